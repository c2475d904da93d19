package engine

import (
	"testing"

	"github.com/dorjilhenduptenzin2892-jpg/Bank-of-Bhutan-Reporting-sub000/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"00", "00"},
		{"0", "00"},
		{"000", "00"},
		{" 05 ", "05"},
		{"005", "05"},
		{"5", "05"},
		{"051", "51"},
		{"91", "91"},
		{"rc91", "RC91"},
		{" xy ", "XY"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeCode(tc.raw), "raw=%q", tc.raw)
	}
}

func TestClassifySuccessSentinel(t *testing.T) {
	classifier := NewClassifier(DefaultCodeTables())

	for _, code := range []string{"00", "0", " 00 ", "000"} {
		assert.Equal(t, entity.CategorySuccess, classifier.Classify(entity.ChannelPOS, code), "code=%q", code)
		assert.Equal(t, entity.CategorySuccess, classifier.Classify(entity.ChannelIPG, code), "code=%q", code)
	}
}

func TestClassifyUserSetDependsOnChannel(t *testing.T) {
	classifier := NewClassifier(DefaultCodeTables())

	// 51 (insufficient funds) é recusa de usuário em todos os canais
	assert.Equal(t, entity.CategoryUserDecline, classifier.Classify(entity.ChannelPOS, "51"))
	assert.Equal(t, entity.CategoryUserDecline, classifier.Classify(entity.ChannelATM, "51"))
	assert.Equal(t, entity.CategoryUserDecline, classifier.Classify(entity.ChannelIPG, "51"))

	// 55 (incorrect PIN) só existe onde há PIN
	assert.Equal(t, entity.CategoryUserDecline, classifier.Classify(entity.ChannelPOS, "55"))
	assert.Equal(t, entity.CategoryBusinessDecline, classifier.Classify(entity.ChannelIPG, "55"))

	// 57 é recusa de usuário só no gateway
	assert.Equal(t, entity.CategoryUserDecline, classifier.Classify(entity.ChannelIPG, "57"))
	assert.Equal(t, entity.CategoryBusinessDecline, classifier.Classify(entity.ChannelPOS, "57"))
}

func TestClassifyTechnicalDict(t *testing.T) {
	classifier := NewClassifier(DefaultCodeTables())

	for _, code := range []string{"68", "90", "91", "92", "94", "96"} {
		assert.Equal(t, entity.CategoryTechnicalDecline, classifier.Classify(entity.ChannelPOS, code), "code=%q", code)
		assert.Equal(t, entity.CategoryTechnicalDecline, classifier.Classify(entity.ChannelIPG, code), "code=%q", code)
	}

	assert.Equal(t, "Issuer or switch is inoperative", classifier.TechnicalDescription("091"))
	assert.Equal(t, "", classifier.TechnicalDescription("05"))
}

func TestClassifyBusinessFallback(t *testing.T) {
	classifier := NewClassifier(DefaultCodeTables())

	for _, code := range []string{"05", "12", "14", "XY", "RC99"} {
		assert.Equal(t, entity.CategoryBusinessDecline, classifier.Classify(entity.ChannelPOS, code), "code=%q", code)
	}
}

func TestClassifyIsPure(t *testing.T) {
	classifier := NewClassifier(DefaultCodeTables())

	first := classifier.Classify(entity.ChannelPOS, " 51 ")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classifier.Classify(entity.ChannelPOS, " 51 "))
	}
}
