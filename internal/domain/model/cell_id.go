package model

import (
	"fmt"
	"strconv"
)

// CellID 階層型六角形グリッドのセル識別子（値型、状態を持たない）
// エンコード・デコードは hexgrid パッケージが担当する
type CellID uint64

// String 16進文字列表現
func (c CellID) String() string {
	return strconv.FormatUint(uint64(c), 16)
}

// MarshalText JSONのマップキー・文字列として16進表現を使う
func (c CellID) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText 16進文字列からCellIDを復元
func (c *CellID) UnmarshalText(text []byte) error {
	id, err := ParseCellID(string(text))
	if err != nil {
		return err
	}
	*c = id
	return nil
}

// ParseCellID 16進文字列をCellIDに変換
func ParseCellID(s string) (CellID, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("セルID %q の解析失敗: %w", s, ErrInvalidCellID)
	}
	return CellID(v), nil
}
