package diff

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const approxCharsPerToken = 4

var (
	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken

	estimateTokensFunc = defaultEstimateTokens
)

// EstimateTokens approximates how many model tokens the text occupies.
func EstimateTokens(text string) int {
	return estimateTokensFunc(text)
}

func defaultEstimateTokens(text string) int {
	if enc := getEncoder(); enc != nil {
		if tokens := enc.Encode(text, nil, nil); len(tokens) > 0 {
			return len(tokens)
		}
	}
	n := len(text) / approxCharsPerToken
	if n < 1 {
		n = 1
	}
	return n
}

func getEncoder() *tiktoken.Tiktoken {
	encoderOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel("gpt-4")
		if err != nil {
			enc, _ = tiktoken.GetEncoding("cl100k_base")
		}
		encoder = enc
	})
	return encoder
}

// Excerpt returns a prefix of diffText that fits within maxTokens, cut on
// line boundaries, with a truncation marker appended when lines were
// dropped. An input already within budget is returned unchanged.
func Excerpt(diffText string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(diffText) <= maxTokens {
		return diffText
	}

	var b strings.Builder
	used := 0
	truncated := false
	for _, line := range strings.SplitAfter(diffText, "\n") {
		cost := EstimateTokens(line)
		if used+cost > maxTokens {
			truncated = true
			break
		}
		b.WriteString(line)
		used += cost
	}
	if truncated {
		b.WriteString("\n[diff truncated]\n")
	}
	return b.String()
}
