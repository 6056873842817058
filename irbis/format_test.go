package irbis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amironov73/irbis-go/internal/records"
)

func TestFormatRecordTrimsOutput(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("G", 222222, 2, "", 0)+"0\r\nTitle: Hello\r\n")

	text := c.FormatRecord("v200^a", 42)
	assert.Equal(t, "Title: Hello", text)

	calls := mock.Calls()
	request := string(calls[len(calls)-1].Request)
	assert.Contains(t, request, "!v200^a\n", "a bare format gets the '!' UTF marker")
}

func TestFormatRecordServerFileReference(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("G", 222222, 2, "", 0)+"0\r\nBrief\r\n")

	c.FormatRecord("@brief", 42)

	calls := mock.Calls()
	request := string(calls[len(calls)-1].Request)
	assert.Contains(t, request, "@brief\n")
}

func TestFormatRecordData(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("G", 222222, 2, "", 0)+"0\r\nInline\r\n")

	rec := records.Record{}
	rec.AddField(200, "").AddSubfield('a', "Hello")

	text := c.FormatRecordData("v200", &rec)
	assert.Equal(t, "Inline", text)

	calls := mock.Calls()
	request := string(calls[len(calls)-1].Request)
	assert.Contains(t, request, "-2\n", "in-memory formatting uses the -2 marker")
	assert.Contains(t, request, "200#^aHello")
}

func TestFormatRecordsParallelOrder(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("G", 222222, 2, "", 0)+"0\r\n2#Second\r\n1#First\r\n")

	texts := c.FormatRecords("v200", []int{1, 2, 3})
	require.Len(t, texts, 3)
	assert.Equal(t, "First", texts[0])
	assert.Equal(t, "Second", texts[1])
	assert.Equal(t, "", texts[2])
}

func TestGlobalCorrectionInlineStatements(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("5", 222222, 2, "", 0)+"0\r\nDONE\r\n")

	lines, ok := c.GlobalCorrection(GlobalCorrectionSettings{
		Actualize:     true,
		Statements:    []string{"ADD", "200", "", "^aNew", ""},
		MinMfn:        1,
		MaxMfn:        3,
		FormalControl: true,
		Autoin:        false,
	})
	require.True(t, ok)
	assert.Equal(t, []string{"DONE"}, lines)

	calls := mock.Calls()
	request := string(calls[len(calls)-1].Request)
	assert.Contains(t, request, "!0\x1F\x1EADD\x1F\x1E")
	assert.True(t, strings.Contains(request, "\n1\n2\n3\n"), "MFN range must be expanded")
	assert.Contains(t, request, "\n&\n", "autoin off adds the '&' marker")
	assert.False(t, strings.Contains(request, "\n*\n"), "formal control on omits the '*' marker")
}

func TestGlobalCorrectionServerFile(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("5", 222222, 2, "", 0)+"0\r\nOK\r\n")

	_, ok := c.GlobalCorrection(GlobalCorrectionSettings{
		FileName:      "fix.gbl",
		MfnList:       []int{5, 9},
		FormalControl: true,
		Autoin:        true,
	})
	require.True(t, ok)

	calls := mock.Calls()
	request := string(calls[len(calls)-1].Request)
	assert.Contains(t, request, "@fix.gbl\n")
	assert.Contains(t, request, "\n5\n9\n")
}

func TestReadTextFileAndWriteTextFile(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock,
		header("L", 222222, 2, "", 0)+"line one\r\nline two\r\n",
		header("L", 222222, 3, "", 0)+"0\r\n",
	)

	text := c.ReadTextFile("3.IBIS.note.txt")
	assert.Contains(t, text, "line one")

	assert.True(t, c.WriteTextFile("3.IBIS.note.txt", "new content"))
}

func TestListFilesSkipsBlankLines(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("!", 222222, 2, "", 0)+"brief.pft\r\n\r\nhello.pft\r\n")

	files := c.ListFiles([]string{"2.IBIS.*.pft"})
	assert.Equal(t, []string{"brief.pft", "hello.pft"}, files)
}
