package errlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Tag(t *testing.T) {
	assert.Equal(t, TagStrains, Error{Code: "STD44"}.Tag())
	assert.Equal(t, TagExcelStructure, Error{Code: "EFS01"}.Tag())
	assert.Equal(t, TagUncategorized, Error{Code: "ZZZ01"}.Tag())
	assert.Equal(t, TagUncategorized, Error{Code: "X"}.Tag())
}

func TestError_Message(t *testing.T) {
	e := Error{Code: "STD44", PK: "CECT 1", Data: "Genus sp."}
	msg := e.Message()
	assert.Contains(t, msg, "CECT 1")
	assert.Contains(t, msg, "Genus sp.")

	unknown := Error{Code: "QQQ99", Data: "something"}
	assert.Contains(t, unknown.Message(), "QQQ99")
}

func TestLog_AddAndCount(t *testing.T) {
	log := NewLog()
	assert.True(t, log.IsEmpty())

	log.Addf("STD44", "CECT 1", "Genus sp.")
	log.Addf("GMD02", "", "")
	log.Addf("STD02", "", "")

	assert.Equal(t, 3, log.Count())
	assert.False(t, log.IsEmpty())
	assert.Len(t, log.Errors(TagStrains), 2)
	assert.Len(t, log.Errors(TagGrowthMedia), 1)
}

func TestLog_RenderGroupedAndOrdered(t *testing.T) {
	log := NewLog()
	log.Addf("STD44", "CECT 1", "Genus sp.")
	log.Addf("STD02", "", "")
	log.Addf("GMD02", "", "")

	var sb strings.Builder
	require.NoError(t, log.Render(&sb))
	out := sb.String()

	// growth media section precedes strains section
	assert.Less(t, strings.Index(out, "Growth media"), strings.Index(out, "Strains"))
	// within a section codes are sorted
	assert.Less(t, strings.Index(out, "STD02"), strings.Index(out, "STD44"))
}

func TestMessageTableCoversSchemaCodes(t *testing.T) {
	for _, code := range []string{"EXL00", "EFS01", "EFS07", "STD44", "STD47", "GID03", "OTD03", "LID03"} {
		_, ok := MessageForCode(code)
		assert.True(t, ok, code)
	}
}
