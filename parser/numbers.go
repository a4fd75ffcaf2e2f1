package parser

import "strconv"

// parseInt32 and parseFloat32 re-validate a numeric literal the lexer has
// already classified as INT/FLOAT. The lexer rejects overflow up front
// (emitting ILLEGAL instead), so these should never fail in practice; they
// return an error anyway rather than panic, since a literal is untrusted
// input until proven otherwise.
func parseInt32(literal string) (int32, error) {
	v, err := strconv.ParseInt(literal, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func parseFloat32(literal string) (float32, error) {
	v, err := strconv.ParseFloat(literal, 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}
