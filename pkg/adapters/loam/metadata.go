package loam

// ExerciseMetadata is the frontmatter of one worksheet exercise.
// Keys follow plain YAML names (id, title, expression, expect).
type ExerciseMetadata struct {
	ID         string `json:"id" mapstructure:"id"`
	Title      string `json:"title" mapstructure:"title"`
	Expression string `json:"expression" mapstructure:"expression"`
	// Expect is the factored form the exercise should produce, in plain notation.
	Expect string `json:"expect" mapstructure:"expect"`
}
