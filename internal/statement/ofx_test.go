package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOFXFile(t *testing.T) {
	assert.True(t, IsOFXFile("statement.ofx"))
	assert.True(t, IsOFXFile("STATEMENT.QFX"))
	assert.False(t, IsOFXFile("statement.csv"))
	assert.False(t, IsOFXFile("statement.ofx.txt"))
}

func TestOFXPreprocess(t *testing.T) {
	p := NewOFXParser()

	t.Run("strips leading whitespace", func(t *testing.T) {
		got := p.preprocess("\n\t OFXHEADER:100")
		assert.Equal(t, "OFXHEADER:100", got)
	})

	t.Run("uppercases severity values", func(t *testing.T) {
		got := p.preprocess("<SEVERITY>Info</SEVERITY>")
		assert.Equal(t, "<SEVERITY>INFO</SEVERITY>", got)
	})

	t.Run("closes truncated SGML tags", func(t *testing.T) {
		got := p.preprocess("<STMTTRN\n<TRNTYPE>DEBIT")
		assert.Equal(t, "<STMTTRN>\n<TRNTYPE>DEBIT", got)
	})

	t.Run("leaves well formed content alone", func(t *testing.T) {
		content := "<STMTTRN>\n<TRNTYPE>DEBIT\n</STMTTRN>"
		assert.Equal(t, content, p.preprocess(content))
	})
}
