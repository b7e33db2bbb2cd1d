package data

// Types describes the shape of an evaluation result as a string.
type Types string

// Valid result types, limited to what the restricted grammar and native
// tool return values can produce.
const (
	NONE   Types = "none"
	BOOL   Types = "bool"
	INT    Types = "int"
	FLOAT  Types = "float"
	STRING Types = "string"
	LIST   Types = "list"
	MAP    Types = "map"
	OBJECT Types = "object" // any other native Go value returned by a tool
	ERROR  Types = "error"
)
