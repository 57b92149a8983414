// Package editor keeps the tree view and the raw text view of one config
// file in sync.
//
// A Session owns the document and its text. Every edit is a full round
// trip: a tree edit re-serializes the whole document and a text edit
// re-parses the whole text. While one view is being refreshed from the
// other, edits arriving from the refreshed view are ignored, so a refresh
// can never bounce back into a second round trip.
package editor

import (
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/KimNorgaard/go-hconf"
	"github.com/KimNorgaard/go-hconf/ast"
	"github.com/KimNorgaard/go-hconf/internal/store"
	"github.com/KimNorgaard/go-hconf/internal/token"
)

var (
	// ErrNotLeaf is returned when a value edit targets a section.
	ErrNotLeaf = errors.New("sections have no value")
	// ErrNoSuchNode is returned when the edited node is not part of the
	// current document, usually because the text was re-parsed since.
	ErrNoSuchNode = errors.New("node is not part of the current document")
	// ErrEmptyKey is returned when renaming a node to an empty key.
	ErrEmptyKey = errors.New("key must not be empty")
	// ErrUnrepresentable is returned when an edit would produce a line that
	// parses back differently.
	ErrUnrepresentable = errors.New("edit cannot be written as a config line")
)

// Views receive refreshes pushed by a Session. Either callback may be nil.
type Views struct {
	// Text is called with the new raw text after a tree edit, load or save.
	Text func(text string)
	// Tree is called with the new document after a text edit or load.
	Tree func(doc *ast.Document)
}

// Session is the application state for one config file.
type Session struct {
	path  string
	store *store.Store
	opts  []hconf.Option
	views Views

	doc   *ast.Document
	text  string
	saved string

	updating bool

	// round trip counters, for tests and tracing
	parses     int
	serializes int
}

// New returns an empty session for the file at path. Nothing is read until
// Load is called. opts control how the document is written.
func New(path string, st *store.Store, opts ...hconf.Option) *Session {
	return &Session{
		path:  path,
		store: st,
		opts:  opts,
		doc:   &ast.Document{},
	}
}

// SetViews installs the view callbacks.
func (s *Session) SetViews(v Views) {
	s.views = v
}

// Path returns the config file path.
func (s *Session) Path() string { return s.path }

// Document returns the current document.
func (s *Session) Document() *ast.Document { return s.doc }

// Text returns the current raw text.
func (s *Session) Text() string { return s.text }

// Dirty reports whether the text differs from what was last loaded or saved.
func (s *Session) Dirty() bool { return s.text != s.saved }

// Syncing reports whether a view refresh is in progress.
func (s *Session) Syncing() bool { return s.updating }

// Load reads the config file. If the file does not exist the session is
// left empty and an error satisfying store.IsNotFound is returned.
func (s *Session) Load() error {
	text, err := s.store.Load(s.path)
	if err != nil {
		if store.IsNotFound(err) {
			glog.Warningf("config file %s not found, starting empty", s.path)
		} else {
			glog.Errorf("loading %s: %v", s.path, err)
		}
		s.replace("", "")
		return err
	}
	s.replace(text, text)
	glog.Infof("loaded %s: %d top-level entries", s.path, len(s.doc.Nodes))
	return nil
}

// Reload re-reads the config file after an external change. It reports
// whether the file differed from what was last loaded or saved; only then
// is the session replaced, discarding unsaved edits.
func (s *Session) Reload() (bool, error) {
	text, err := s.store.Load(s.path)
	if err != nil {
		return false, err
	}
	if text == s.saved {
		return false, nil
	}
	s.replace(text, text)
	glog.Infof("reloaded %s", s.path)
	return true, nil
}

// replace installs a new text, re-parses it and refreshes both views.
func (s *Session) replace(text, saved string) {
	s.text = text
	s.saved = saved
	s.doc = s.parse(text)
	s.refresh(func() {
		if s.views.Tree != nil {
			s.views.Tree(s.doc)
		}
		if s.views.Text != nil {
			s.views.Text(s.text)
		}
	})
}

// EditValue sets the value of a leaf in place and re-serializes the
// document. It returns the new raw text.
func (s *Session) EditValue(n ast.Node, value string) (string, error) {
	if s.updating {
		return s.text, nil
	}
	leaf, ok := n.(*ast.Leaf)
	if !ok {
		return s.text, ErrNotLeaf
	}
	if !s.doc.Contains(n) {
		return s.text, ErrNoSuchNode
	}
	// Trimmed exactly as the lexer trims, so the text parses back to it.
	value = token.Trim(value)
	if strings.ContainsAny(value, "\r\n") || strings.HasSuffix(value, "{") {
		return s.text, errors.Wrapf(ErrUnrepresentable, "value %q", value)
	}

	glog.V(2).Infof("edit %s: %q -> %q", leaf.Key, leaf.Value, value)
	leaf.SetValue(value)
	return s.serialize()
}

// RenameKey changes the key of a leaf or the name of a section and
// re-serializes the document. It returns the new raw text.
func (s *Session) RenameKey(n ast.Node, key string) (string, error) {
	if s.updating {
		return s.text, nil
	}
	if n == nil || !s.doc.Contains(n) {
		return s.text, ErrNoSuchNode
	}
	key = token.Trim(key)
	if key == "" {
		return s.text, ErrEmptyKey
	}
	if err := checkKey(n, key); err != nil {
		return s.text, err
	}

	glog.V(2).Infof("rename %q -> %q", n.Name(), key)
	ast.Rename(n, key)
	return s.serialize()
}

func checkKey(n ast.Node, key string) error {
	bad := strings.ContainsAny(key, "\r\n{") || strings.HasPrefix(key, "#")
	if _, ok := n.(*ast.Leaf); ok {
		bad = bad || strings.Contains(key, "=")
	}
	if bad {
		return errors.Wrapf(ErrUnrepresentable, "key %q", key)
	}
	return nil
}

// SetText replaces the raw text and rebuilds the whole tree from it.
func (s *Session) SetText(text string) *ast.Document {
	if s.updating || text == s.text {
		return s.doc
	}
	s.text = text
	s.doc = s.parse(text)
	s.refresh(func() {
		if s.views.Tree != nil {
			s.views.Tree(s.doc)
		}
	})
	return s.doc
}

// Save writes the canonical text of the document to the config file and
// makes it the displayed text, so the text view shows exactly what is on
// disk. On failure nothing in the session changes.
func (s *Session) Save() (string, error) {
	out, err := hconf.Marshal(s.doc, s.opts...)
	if err != nil {
		return s.text, err
	}
	s.serializes++
	text := string(out)

	if err := s.store.Save(s.path, text); err != nil {
		glog.Errorf("saving %s: %v", s.path, err)
		return s.text, err
	}
	s.text = text
	s.saved = text
	s.refresh(func() {
		if s.views.Text != nil {
			s.views.Text(s.text)
		}
	})
	return s.text, nil
}

func (s *Session) serialize() (string, error) {
	out, err := hconf.Marshal(s.doc, s.opts...)
	if err != nil {
		return s.text, err
	}
	s.serializes++
	s.text = string(out)
	s.refresh(func() {
		if s.views.Text != nil {
			s.views.Text(s.text)
		}
	})
	return s.text, nil
}

func (s *Session) parse(text string) *ast.Document {
	s.parses++
	if glog.V(1) {
		if err := hconf.Check([]byte(text)); err != nil {
			glog.Infof("%s: %v", s.path, err)
		}
	}
	return hconf.Parse([]byte(text))
}

// refresh runs fn with the re-entrancy guard held.
func (s *Session) refresh(fn func()) {
	s.updating = true
	defer func() { s.updating = false }()
	fn()
}
