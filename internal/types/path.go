package types

// SplitPath splits a dotted subcolumn path into its first component and
// the remainder. Dots inside balanced parentheses belong to a parametrized
// type spelling and never split:
//
//	SplitPath("Int64.null")            = ("Int64", "null")
//	SplitPath("Tuple(a Int64).a")      = ("Tuple(a Int64)", "a")
//	SplitPath("Array(String)")         = ("Array(String)", "")
func SplitPath(path string) (head, rest string) {
	depth := 0
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 {
				return path[:i], path[i+1:]
			}
		}
	}
	return path, ""
}
