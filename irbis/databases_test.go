package irbis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDatabasesFromMenu(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("L", 222222, 2, "", 0)+
		"IBIS\r\nMain catalog\r\n-RDR\r\nReaders\r\n*****\r\n")

	dbs := c.ListDatabases("")
	require.Len(t, dbs, 2)
	assert.Equal(t, "IBIS", dbs[0].Name)
	assert.Equal(t, "Main catalog", dbs[0].Description)
	assert.False(t, dbs[0].ReadOnly)
	assert.Equal(t, "RDR", dbs[1].Name)
	assert.True(t, dbs[1].ReadOnly)
}

func TestReadMenu(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("L", 222222, 2, "", 0)+"a\r\nAlpha\r\nb\r\nBeta\r\n*****\r\n")

	menu := c.ReadMenu("3.IBIS.some.mnu")
	require.Len(t, menu.Entries, 2)
	comment, ok := menu.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "Beta", comment)
}

func TestReadIni(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("L", 222222, 2, "", 0)+"[Main]\r\nUser=librarian\r\n")

	ini := c.ReadIni("3.IBIS.client.ini")
	section, ok := ini.Section("main")
	require.True(t, ok)
	value, ok := section.Get("user")
	require.True(t, ok)
	assert.Equal(t, "librarian", value)
}

func TestReadTree(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("L", 222222, 2, "", 0)+"root\r\n\tchild\r\n")

	roots, err := c.ReadTree("3.IBIS.some.tre")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "child", roots[0].Children[0].Value)
}

func TestReadTreeBadIndent(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("L", 222222, 2, "", 0)+"root\r\n\t\t\ttoo deep\r\n")

	_, err := c.ReadTree("3.IBIS.bad.tre")
	require.Error(t, err)
}

func TestListDatabasesWhenDisconnected(t *testing.T) {
	c, _ := newTestConnection()
	assert.Nil(t, c.ListDatabases(""))
}

func TestGetDatabaseInfo(t *testing.T) {
	c, mock := connected(t)
	pushResponse(mock, header("0", 222222, 2, "", 0)+
		"0\r\n-150\r\n1\x1E2\r\n3\r\n\r\n4\x1E5\x1E6\r\n7\r\n")

	info, ok := c.GetDatabaseInfo("IBIS")
	require.True(t, ok)
	assert.Equal(t, 150, info.MaxMfn)
	assert.True(t, info.Locked)
	assert.Equal(t, []int{1, 2}, info.LogicallyDeleted)
	assert.Equal(t, []int{3}, info.PhysicallyDeleted)
	assert.Empty(t, info.NonActualized)
	assert.Equal(t, []int{4, 5, 6}, info.LockedMfns)
	assert.Equal(t, []int{7}, info.New)
}
