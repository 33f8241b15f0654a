package token

// CommentKind distinguishes line comments from block comments.
type CommentKind int

const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// Comment is a SQL comment the lexer collected, with its source span. Query
// files use leading line comments to annotate the statement that follows
// (e.g. "-- name: GetUser"), so comments keep their exact text including
// the delimiters.
type Comment struct {
	Kind CommentKind
	Text string
	Span Span
}

// IsLineComment reports whether the comment is a -- line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}
