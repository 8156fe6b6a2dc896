package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirbrowse/server/internal/data/annot"
	"github.com/mirbrowse/server/internal/model"
	"github.com/mirbrowse/server/internal/view"
)

const table = `miRNA,Conservation,Pan_troglodytes,Expression,heart,Structure,Class_miRBase,Class_MirGeneDB,miRBase family,MirGeneDB family,hsa-specificity,Repeat_Class,sequence
rec-1,TRUE,TRUE,TRUE,2.5,TRUE,R,R,NO,YES,Yes,LINE,"acg u
ua"
rec-2,FALSE,nan,FALSE,,FALSE,D,,NO,NO,No,no repeat,
rec-3,,,,,,,,,,,,  gguc
`

func load(t *testing.T) *model.Dataset {
	t.Helper()
	raw, err := annot.Read(strings.NewReader(table), ',')
	require.NoError(t, err)
	return annot.Normalize(raw, model.Schema{Species: []string{"Pan_troglodytes"}, Tissues: []string{"heart"}})
}

func TestWriteTSV_RoundTrip(t *testing.T) {
	ds := load(t)
	cols := view.Columns(ds, view.Visibility{Species: []string{"Pan_troglodytes"}, Tissues: []string{"heart"}})
	tbl := view.Project(ds, []int{0, 1, 2}, cols)

	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, tbl))

	header, rows, err := ReadTSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"miRNA", "Conservation", "P. troglodytes", "Expression", "heart", "Structure",
		"MirGeneDB family", "miRBase family", "hsa-specificity", "Repeat Class",
	}, header)
	assert.NotContains(t, header, "sequence")
	require.Len(t, rows, 3)

	for r, row := range rows {
		require.Len(t, row, len(cols))
		for c, v := range row {
			assert.Equal(t, tbl.Rows[r][c].Text, v, "row %d column %s", r, header[c])
		}
	}
	assert.Equal(t, []string{"rec-2", "0", "", "0", "", "D/-", "", "", "No", "no repeat"}, rows[1])
}

func TestReadTSV_Empty(t *testing.T) {
	_, _, err := ReadTSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteFASTA(t *testing.T) {
	ds := load(t)
	var buf bytes.Buffer
	n, err := WriteFASTA(&buf, ds, []int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, ">rec-1\nACGUUA\n>rec-3\nGGUC\n", buf.String())
}

func TestWriteFASTA_NoSelection(t *testing.T) {
	ds := load(t)
	var buf bytes.Buffer
	n, err := WriteFASTA(&buf, ds, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, buf.String())
}

func TestSequence(t *testing.T) {
	assert.Equal(t, "ACGU", Sequence(" a c\tg\nu "))
	assert.Equal(t, "", Sequence("   "))
}
