package theme

type Theme interface {
	RenderNote(column int, special bool) string
	RenderTail(dead bool) string
	RenderHitField(column int) string
}
