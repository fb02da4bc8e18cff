// Package suggest scores password strength and generates secure
// replacements.
package suggest

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

const (
	// MinLength is the floor enforced on generated passwords.
	MinLength = 12
	// RecommendedLength is the default generated password length.
	RecommendedLength = 16

	symbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// Analysis is the strength report for one password, on the zxcvbn 0-4
// scale.
type Analysis struct {
	Score      int    `json:"score"`
	Strength   string `json:"strength"`
	CrackTime  string `json:"crack_time"`
	Length     int    `json:"length"`
	HasUpper   bool   `json:"has_uppercase"`
	HasLower   bool   `json:"has_lowercase"`
	HasDigits  bool   `json:"has_digits"`
	HasSpecial bool   `json:"has_special"`
}

// Suggestion is one generated replacement secret.
type Suggestion struct {
	Type        string `json:"type"`
	Password    string `json:"password"`
	Description string `json:"description"`
}

// Recommendation bundles the analysis of a password with improvement
// hints and, for weak passwords, generated alternatives.
type Recommendation struct {
	Strength         string       `json:"strength"`
	Score            int          `json:"score"`
	CrackTime        string       `json:"crack_time"`
	NeedsImprovement bool         `json:"needs_improvement"`
	Suggestions      []string     `json:"suggestions"`
	Alternatives     []Suggestion `json:"alternative_passwords"`
}

var scoreLabels = map[int]string{
	0: "Very Weak",
	1: "Weak",
	2: "Fair",
	3: "Strong",
	4: "Very Strong",
}

// ScoreLabel converts a 0-4 score to its human-readable label.
func ScoreLabel(score int) string {
	if label, ok := scoreLabels[score]; ok {
		return label
	}
	return "Unknown"
}

// AnalyzeStrength scores a password with zxcvbn and reports its
// character-class composition.
func AnalyzeStrength(password string) Analysis {
	result := zxcvbn.PasswordStrength(password, nil)
	a := Analysis{
		Score:     result.Score,
		Strength:  ScoreLabel(result.Score),
		CrackTime: result.CrackTimeDisplay,
		Length:    len(password),
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			a.HasUpper = true
		case unicode.IsLower(r):
			a.HasLower = true
		case unicode.IsDigit(r):
			a.HasDigits = true
		case strings.ContainsRune(symbols, r):
			a.HasSpecial = true
		}
	}
	return a
}

// Improvements lists concrete fixes for a weak password. Passwords
// scoring 3 or better get none.
func Improvements(password string) []string {
	a := AnalyzeStrength(password)
	if a.Score >= 3 {
		return nil
	}
	var out []string
	if a.Length < MinLength {
		out = append(out, fmt.Sprintf("Increase length to at least %d characters", MinLength))
	}
	if !a.HasUpper {
		out = append(out, "Add uppercase letters")
	}
	if !a.HasLower {
		out = append(out, "Add lowercase letters")
	}
	if !a.HasDigits {
		out = append(out, "Add numbers")
	}
	if !a.HasSpecial {
		out = append(out, "Add special characters (!@#$%^&*)")
	}
	return out
}

// GeneratePassword returns a cryptographically secure random password of
// at least MinLength characters, retried until it contains every
// required character class.
func GeneratePassword(length int, includeSymbols bool) (string, error) {
	if length < MinLength {
		length = MinLength
	}

	chars := letters + digits
	if includeSymbols {
		chars += symbols
	}

	for {
		var b strings.Builder
		b.Grow(length)
		for i := 0; i < length; i++ {
			c, err := randomChar(chars)
			if err != nil {
				return "", err
			}
			b.WriteRune(c)
		}
		pwd := b.String()
		if meetsComplexity(pwd, includeSymbols) {
			return pwd, nil
		}
	}
}

// passphraseWords is a compact built-in word list; wordlist-based
// passphrases favor memorability over raw entropy.
var passphraseWords = []string{
	"correct", "horse", "battery", "staple", "mountain", "river",
	"sunset", "ocean", "forest", "thunder", "crystal", "phoenix",
	"dragon", "wizard", "castle", "knight", "galaxy", "nebula",
	"quantum", "cipher", "enigma", "paradox", "zenith", "aurora",
}

// GeneratePassphrase joins wordCount capitalized random words with
// dashes and appends a random number below 1000.
func GeneratePassphrase(wordCount int) (string, error) {
	if wordCount < 1 {
		wordCount = 4
	}
	words := make([]string, 0, wordCount)
	for i := 0; i < wordCount; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passphraseWords))))
		if err != nil {
			return "", fmt.Errorf("passphrase entropy: %w", err)
		}
		w := passphraseWords[n.Int64()]
		words = append(words, strings.ToUpper(w[:1])+w[1:])
	}
	tail, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("passphrase entropy: %w", err)
	}
	return strings.Join(words, "-") + tail.String(), nil
}

// Alternatives generates the standard replacement set offered alongside
// weak-password findings.
func Alternatives() ([]Suggestion, error) {
	random, err := GeneratePassword(RecommendedLength, true)
	if err != nil {
		return nil, err
	}
	phrase, err := GeneratePassphrase(4)
	if err != nil {
		return nil, err
	}
	long, err := GeneratePassword(20, true)
	if err != nil {
		return nil, err
	}
	return []Suggestion{
		{Type: "random", Password: random, Description: "16-character random password"},
		{Type: "passphrase", Password: phrase, Description: "Memorable passphrase"},
		{Type: "long_random", Password: long, Description: "20-character maximum security"},
	}, nil
}

// Recommend runs the full evaluation: strength, improvements, and
// generated alternatives when the password scores below 3.
func Recommend(password string) (Recommendation, error) {
	a := AnalyzeStrength(password)
	rec := Recommendation{
		Strength:         a.Strength,
		Score:            a.Score,
		CrackTime:        a.CrackTime,
		NeedsImprovement: a.Score < 3,
		Suggestions:      Improvements(password),
	}
	if rec.NeedsImprovement {
		alts, err := Alternatives()
		if err != nil {
			return rec, err
		}
		rec.Alternatives = alts
	}
	return rec, nil
}

func randomChar(chars string) (rune, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
	if err != nil {
		return 0, fmt.Errorf("password entropy: %w", err)
	}
	return rune(chars[n.Int64()]), nil
}

func meetsComplexity(pwd string, includeSymbols bool) bool {
	var upper, lower, digit, special bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(symbols, r):
			special = true
		}
	}
	if includeSymbols && !special {
		return false
	}
	return upper && lower && digit
}
