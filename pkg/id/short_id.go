package id

import "github.com/teris-io/shortid"

// ShortId 生成短 ID，用于邀请码等对外展示的标识
func ShortId() string {
	id, err := shortid.Generate()
	if err != nil {
		return ""
	}
	return id
}
