package setting

// ValueType declares how a setting's string value should parse.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeBool   ValueType = "bool"
	TypeInt    ValueType = "int"
)

// Definition describes a registered setting.
// The zero Type means TypeString.
type Definition struct {
	// Name is the globally unique setting name, e.g. "Mail.SenderAddress".
	Name string

	// DisplayName is a human-readable label for administrative UIs.
	DisplayName string

	// DefaultValue is the terminal of the resolution chain. It may be
	// empty: an unset default and a missing row both resolve to "".
	DefaultValue string

	// Type declares the expected value format for typed getters.
	Type ValueType
}
