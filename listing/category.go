package listing

import (
	"path/filepath"
	"strings"
)

const DefaultCategory = "file"

var categoryExtensions = map[string][]string{
	"file-zipper":     {".zip", ".rar", ".7z"},
	"box":             {".tar", ".xz", ".gz"},
	"file-pdf":        {".pdf"},
	"file-word":       {".doc", ".docx"},
	"file-excel":      {".xls", ".xlsx"},
	"file-powerpoint": {".ppt", ".pptx"},
	"file-lines":      {".txt"},
	"book":            {".md"},
	"file-image":      {".jpg", ".jpeg", ".png", ".gif", ".bmp"},
	"file-audio":      {".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac"},
	"file-video":      {".mp4", ".avi", ".mkv", ".mov", ".flv", ".wmv", ".webm"},
	"cube":            {".exe", ".bin", ".jar"},
	"file-code":       {".py", ".c", ".cpp", ".java", ".html", ".css", ".js", ".go"},
	"terminal":        {".sh", ".bat"},
	"database":        {".accdb", ".db", ".sql", ".sqlite"},
}

var categoryByExt = func() map[string]string {
	m := make(map[string]string)
	for category, exts := range categoryExtensions {
		for _, ext := range exts {
			m[ext] = category
		}
	}
	return m
}()

// CategoryOf groups a file name by its extension.
func CategoryOf(name string) string {
	if c, ok := categoryByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return c
	}
	return DefaultCategory
}
