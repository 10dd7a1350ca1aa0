// SPDX-License-Identifier: MPL-2.0

package libpaths

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/creative-designer/cdlib/internal/issue"
	"github.com/creative-designer/cdlib/pkg/assetkind"
)

const (
	// SettingsFileName is the file name of the settings document inside the
	// configuration root.
	SettingsFileName = "creative_designer_paths.xml"

	rootElement = "LibraryPaths"
)

var (
	// ErrMalformedSettings is wrapped by Load when the settings file is not valid XML.
	ErrMalformedSettings = errors.New("malformed settings file")
	// ErrUnencodablePath is wrapped by Save when an override cannot be stored
	// as XML text without being altered.
	ErrUnencodablePath = errors.New("path cannot be stored in the settings file")
)

type (
	// Store reads and writes the settings file.
	//
	// Every Save rewrites the whole file. There is no locking: the last writer wins.
	Store struct {
		Path string
	}

	pathsDocument struct {
		XMLName xml.Name    `xml:"LibraryPaths"`
		Entries []pathEntry `xml:",any"`
	}

	pathEntry struct {
		XMLName xml.Name
		Text    string `xml:",chardata"`
	}

	// xmlNode is a generic element used on load so both the bare and the
	// wrapped document layouts can be read.
	xmlNode struct {
		XMLName  xml.Name
		Text     string    `xml:",chardata"`
		Children []xmlNode `xml:",any"`
	}
)

// NewStore returns a store for the settings file inside dir.
func NewStore(dir string) *Store {
	return &Store{Path: filepath.Join(dir, SettingsFileName)}
}

// Save writes one element per asset kind in settings order. An override
// that does not exist on disk is written as empty text.
func (s *Store) Save(settings *Settings) error {
	kept := settings.existing()
	for _, k := range assetkind.SettingsOrder() {
		if p := kept.Override(k); !validXMLText(p) {
			return s.writeError(fmt.Errorf("%w: %s override %q", ErrUnencodablePath, k, p))
		}
	}

	doc := pathsDocument{Entries: make([]pathEntry, 0, len(assetkind.SettingsOrder()))}
	for _, k := range assetkind.SettingsOrder() {
		doc.Entries = append(doc.Entries, pathEntry{
			XMLName: xml.Name{Local: k.XMLTag()},
			Text:    kept.Override(k),
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return s.writeError(fmt.Errorf("failed to encode settings: %w", err))
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return s.writeError(err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return s.writeError(err)
	}

	slog.Debug("saved library paths", "path", s.Path)
	return nil
}

// Load reads the settings file. A missing file yields empty settings.
// Overrides that no longer exist on disk are loaded as empty, and unknown
// elements are ignored. Invalid XML returns an error wrapping ErrMalformedSettings.
func (s *Store) Load() (*Settings, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return NewSettings(), nil
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read library paths").
			WithResource(s.Path).
			WithSuggestion("Check the file permissions of the settings file").
			WithIssue(issue.PermissionDeniedId).
			Wrap(err).
			BuildError()
	}

	root, err := decodeDocument(data)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse library paths").
			WithResource(s.Path).
			WithSuggestion("Fix or delete the file; it is rewritten on the next path change").
			WithIssue(issue.SettingsParseFailedId).
			Wrap(fmt.Errorf("%w: %w", ErrMalformedSettings, err)).
			BuildError()
	}

	settings := NewSettings()
	for _, paths := range pathsElements(root) {
		for _, child := range paths.Children {
			kind, ok := assetkind.FromXMLTag(child.XMLName.Local)
			if !ok {
				continue
			}
			if Exists(child.Text) {
				settings.SetOverride(kind, child.Text)
			} else {
				if child.Text != "" {
					slog.Debug("stored override no longer exists", "kind", kind, "path", child.Text)
				}
				settings.SetOverride(kind, "")
			}
		}
	}
	return settings, nil
}

// decodeDocument parses the root element and rejects anything but comments,
// processing instructions and whitespace around it.
func decodeDocument(data []byte) (*xmlNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *xmlNode
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if root == nil {
				return nil, errors.New("no root element")
			}
			return root, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
			}
			root = &xmlNode{}
			if err := dec.DecodeElement(root, &t); err != nil {
				return nil, err
			}
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, errors.New("unexpected text outside the root element")
			}
		}
	}
}

// validXMLText reports whether s survives an XML round trip unchanged.
func validXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

// pathsElements returns the LibraryPaths elements of a document: the root
// itself, or every direct child of that name under a wrapper root.
func pathsElements(root *xmlNode) []*xmlNode {
	if root.XMLName.Local == rootElement {
		return []*xmlNode{root}
	}
	var out []*xmlNode
	for i := range root.Children {
		if root.Children[i].XMLName.Local == rootElement {
			out = append(out, &root.Children[i])
		}
	}
	return out
}

func (s *Store) writeError(err error) error {
	return issue.NewErrorContext().
		WithOperation("write library paths").
		WithResource(s.Path).
		WithSuggestion("Check that the configuration directory is writable").
		WithIssue(issue.SettingsWriteFailedId).
		Wrap(err).
		BuildError()
}
