package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source loads the dictionary of a single language.
// A language without translations yields an empty dictionary, not an error.
type Source interface {
	Load(ctx context.Context, lang string) (Dictionary, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, lang string) (Dictionary, error)

// Load implements Source.
func (f SourceFunc) Load(ctx context.Context, lang string) (Dictionary, error) {
	return f(ctx, lang)
}

// MapSource serves dictionaries from memory.
type MapSource map[string]Dictionary

// Load implements Source.
func (s MapSource) Load(_ context.Context, lang string) (Dictionary, error) {
	if d, ok := s[lang]; ok && d != nil {
		return d, nil
	}
	return Dictionary{}, nil
}

// langCodePattern keeps language names safe to use as file names.
var langCodePattern = regexp.MustCompile(`^[A-Za-z]{2,8}([_-][A-Za-z0-9]{1,8})*$`)

// ValidLanguageCode reports whether code can address a language file.
func ValidLanguageCode(code string) bool {
	return langCodePattern.MatchString(code)
}

// FileSource reads "<lang><ext>" files from a filesystem.
// Supported extensions are .json, .yaml and .yml.
type FileSource struct {
	fsys fs.FS
	ext  string
}

// NewFileSource reads language files from dir on disk.
func NewFileSource(dir, ext string) *FileSource {
	return NewFSSource(os.DirFS(dir), ext)
}

// NewFSSource reads language files from the root of fsys, e.g. an embed.FS sub tree.
// An empty ext defaults to ".json".
func NewFSSource(fsys fs.FS, ext string) *FileSource {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		ext = ".json"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &FileSource{fsys: fsys, ext: strings.ToLower(ext)}
}

// Load implements Source. A missing file yields an empty dictionary.
func (s *FileSource) Load(ctx context.Context, lang string) (Dictionary, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	if !ValidLanguageCode(lang) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguageCode, lang)
	}

	name := path.Clean(lang + s.ext)
	content, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Dictionary{}, nil
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return Dictionary{}, nil
	}

	return parseDictionary(s.ext, content)
}

func parseDictionary(ext string, content []byte) (Dictionary, error) {
	dict := Dictionary{}
	switch ext {
	case ".json":
		if err := json.Unmarshal(content, &dict); err != nil {
			return nil, errors.Join(ErrFailedToParseFile, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &dict); err != nil {
			return nil, errors.Join(ErrFailedToParseFile, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileFormat, ext)
	}
	return dict, nil
}
