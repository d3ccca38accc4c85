package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProblemURL(t *testing.T) {
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", ProblemURL("", "two-sum"))
	assert.Equal(t, "https://example.com/custom", ProblemURL("https://example.com/custom", "two-sum"))
}

func TestQuestionCanonicalURL(t *testing.T) {
	q := &Question{Slug: "valid-anagram"}
	assert.Equal(t, "https://leetcode.com/problems/valid-anagram/", q.CanonicalURL())

	q.URL = "https://leetcode.com/problems/valid-anagram/solution/"
	assert.Equal(t, q.URL, q.CanonicalURL())
}
