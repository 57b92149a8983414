package hconf

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-hconf/internal/formatter"
)

// Option configures how documents are written.
type Option func(*options) error

type options struct {
	indent *int
	tabs   bool
}

// Indent returns an Option that indents each nesting level with n spaces.
// The default is 4. Indent(0) writes every line flush left.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("hconf: indent spaces cannot be negative")
		}
		o.indent = &n
		o.tabs = false
		return nil
	}
}

// IndentTabs returns an Option that indents each nesting level with one tab.
func IndentTabs() Option {
	return func(o *options) error {
		o.tabs = true
		o.indent = nil
		return nil
	}
}

func newOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *options) indentString() string {
	switch {
	case o.tabs:
		return "\t"
	case o.indent != nil:
		return strings.Repeat(" ", *o.indent)
	default:
		return formatter.DefaultIndent
	}
}
