package domain

// Field constants for JSON and store key standardization.
const (
	// KeyExpression is the JSON field and MCP argument carrying the raw input.
	KeyExpression = "expression"
	// KeyNotation is the JSON field and MCP argument selecting the notation.
	KeyNotation = "notation"
)
