package domain

// Exercise is one worksheet entry: an expression and, optionally, the expected factorization.
type Exercise struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	Expression string `json:"expression"`
	Expect     string `json:"expect,omitempty"`
}

// Grade is the outcome of factoring one exercise.
type Grade struct {
	Exercise    Exercise     `json:"exercise"`
	Explanation *Explanation `json:"explanation,omitempty"`
	Got         string       `json:"got"`
	Error       string       `json:"error,omitempty"`
	Passed      bool         `json:"passed"`
}
