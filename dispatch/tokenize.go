package dispatch

// ASCII space or tab.
func isSep(b byte) bool {
	return b == ' ' || b == '\t'
}

// Tokenize splits the line into tokens referencing the original string,
// no copying. Runs of spaces and tabs separate tokens. A token opening
// with '"' extends to the next '"' or to the end of the line; after the
// closing quote any characters glued to it are consumed and discarded
// up to the next separator. The quirk is kept on purpose: existing
// command sets rely on it, and it is pinned by tests.
//
// Tokens are written into buf; once buf is full the remaining tokens
// are scanned but dropped, which is how the caller detects "too many
// arguments" with a buffer of maximum arity plus spare slots.
// Returns the number of tokens written, or ErrEmpty if the line
// contains none.
func Tokenize(line string, buf []string) (int, error) {
	n := 0
	i := 0
	for i < len(line) {
		for i < len(line) && isSep(line[i]) {
			i++
		}
		if i >= len(line) {
			break
		}
		var tok string
		if line[i] == '"' {
			start := i + 1
			i = start
			for i < len(line) && line[i] != '"' {
				i++
			}
			tok = line[start:i]
			if i < len(line) {
				i++ // closing quote
			}
			for i < len(line) && !isSep(line[i]) {
				i++ // trailing garbage after the closing quote
			}
		} else {
			start := i
			for i < len(line) && !isSep(line[i]) {
				i++
			}
			tok = line[start:i]
		}
		if n < len(buf) {
			buf[n] = tok
			n++
		}
	}
	if n == 0 {
		return 0, ErrEmpty
	}
	return n, nil
}
