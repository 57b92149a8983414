package hconf

// Format parses data and returns it in canonical form: comments and blank
// lines removed, one entry per line, indentation normalized.
func Format(data []byte, opts ...Option) ([]byte, error) {
	return Marshal(Parse(data), opts...)
}
