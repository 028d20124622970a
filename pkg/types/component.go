package types

// UnboundComponent describes one occurrence of a markup tag whose name has
// no lexical binding at its point of use.
type UnboundComponent struct {
	Name string `json:"name"`
	// PropNames are the free variables of the style expression that are not
	// already passed as an attribute of the same tag, in first-seen order.
	PropNames []string `json:"propNames"`
	ClassName string   `json:"className"`
	// ClassNameOffsets is nil when the tag had no style attribute, meaning
	// there is nothing to remove from the source.
	ClassNameOffsets *Offsets `json:"classNameOffsets,omitempty"`
	// TagOffsets is the tag-name token of the opening tag. Used for
	// reporting only.
	TagOffsets Offsets `json:"tagOffsets"`
}

// Component is the descriptor of a single element located under a cursor.
type Component struct {
	UnboundComponent
	// Type is the literal tag name, e.g. "span" or "Card".
	Type              string   `json:"type"`
	SelfClosing       bool     `json:"selfClosing"`
	OpeningTagOffsets Offsets  `json:"openingTagOffsets"`
	ClosingTagOffsets *Offsets `json:"closingTagOffsets,omitempty"`
}

// Declarable is anything a styled declaration can be generated from.
type Declarable interface {
	// DeclarationName is the identifier being declared.
	DeclarationName() string
	// DeclarationType is the wrapped tag, empty when not positionally resolved.
	DeclarationType() string
	// DeclarationStyle is the compiled style-template text.
	DeclarationStyle() string
	// StyleOffsets is the style attribute range in the source, or nil.
	StyleOffsets() *Offsets
}

func (u UnboundComponent) DeclarationName() string  { return u.Name }
func (u UnboundComponent) DeclarationType() string  { return "" }
func (u UnboundComponent) DeclarationStyle() string { return u.ClassName }
func (u UnboundComponent) StyleOffsets() *Offsets   { return u.ClassNameOffsets }

func (c Component) DeclarationType() string { return c.Type }

// Insertion is a single text insertion at a byte offset.
type Insertion struct {
	Offset int    `json:"insertionOffset"`
	Text   string `json:"insertionText"`
}

// Edit replaces the bytes in Offsets with Text. An empty Text deletes the
// range; an empty range inserts.
type Edit struct {
	Offsets Offsets `json:"offsets"`
	Text    string  `json:"text"`
}

// Deletion returns an edit removing o.
func Deletion(o Offsets) Edit {
	return Edit{Offsets: o}
}

// Replacement returns an edit replacing o with text.
func Replacement(o Offsets, text string) Edit {
	return Edit{Offsets: o, Text: text}
}

// Insert returns an edit inserting ins.Text at ins.Offset.
func Insert(ins Insertion) Edit {
	return Edit{Offsets: Offsets{Start: ins.Offset, End: ins.Offset}, Text: ins.Text}
}
