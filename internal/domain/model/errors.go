package model

import "errors"

var (
	// ErrInvalidGeometry NaN・範囲外の座標など、計算に使えないジオメトリ
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidCellID 解釈できないセルID
	ErrInvalidCellID = errors.New("invalid cell id")
	// ErrCellNotFound グリッドに存在しないセルへの単一更新（非致命的な警告）
	ErrCellNotFound = errors.New("cell not found")
	// ErrProjectNotFound 登録されていないプロジェクトID
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidParameter 解釈できないリクエストパラメータ
	ErrInvalidParameter = errors.New("invalid parameter")
)
