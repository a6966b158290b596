// Package embedded 提供内置配置数据的统一访问接口
//
// 默认数据嵌入在本包的 data/ 目录中(game.yaml, plants.yaml, zombies.yaml, levels/)。
// 命令行 --config-dir 可以通过 Init 替换为磁盘目录, 其余包只通过 FS/ReadFile 访问,
// 不关心数据来自哪里。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed data
var builtinFS embed.FS

var (
	dataFS     fs.FS
	overridden bool
)

// Init 用外部文件系统替换内置数据
// 传入 nil 恢复为内置数据。
func Init(fsys fs.FS) {
	dataFS = fsys
	overridden = fsys != nil
}

// IsOverridden 返回是否正在使用外部数据目录
func IsOverridden() bool {
	return overridden
}

// FS 返回当前数据文件系统, 根目录即 data/ 目录本身
func FS() fs.FS {
	if overridden {
		return dataFS
	}
	sub, err := fs.Sub(builtinFS, "data")
	if err != nil {
		// data 目录由 go:embed 保证存在
		panic(fmt.Sprintf("embedded data directory missing: %v", err))
	}
	return sub
}

// normalize 标准化路径: 统一正斜杠, 去掉 "./" 与 "data/" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	return strings.TrimPrefix(path, "data/")
}

// Open 打开数据文件
// 路径可以带或不带 "data/" 前缀
func Open(path string) (fs.File, error) {
	return FS().Open(normalize(path))
}

// ReadFile 读取数据文件内容
func ReadFile(path string) ([]byte, error) {
	data, err := fs.ReadFile(FS(), normalize(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded file %s: %w", path, err)
	}
	return data, nil
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在数据文件系统中匹配文件
func Glob(pattern string) ([]string, error) {
	return fs.Glob(FS(), normalize(pattern))
}
