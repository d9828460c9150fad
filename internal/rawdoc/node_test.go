package rawdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxrecon/internal/rawdoc"
)

const namespacedXML = `<?xml version="1.0"?>
<ns2:ITR xmlns:ns2="http://incometaxindiaefiling.gov.in/main">
  <ns2:ITR6>
    <ns2:PartA_OI>
      <ns2:AmtDisallUs40A3> 2500.00 </ns2:AmtDisallUs40A3>
    </ns2:PartA_OI>
    <ns2:ScheduleBP>
      <ns2:AmtDisallUs40A3>9999</ns2:AmtDisallUs40A3>
    </ns2:ScheduleBP>
  </ns2:ITR6>
</ns2:ITR>`

func TestNode_Find_IgnoresNamespaces(t *testing.T) {
	root, err := rawdoc.DecodeXML([]byte(namespacedXML))
	require.NoError(t, err)

	// Lookup works bare or with a prefix the caller invented.
	assert.NotNil(t, root.Find("ITR6"))
	assert.NotNil(t, root.Find("x:ITR6"))
	assert.Nil(t, root.Find("ITR5"))
}

func TestNode_Find_AnyDepth(t *testing.T) {
	root, err := rawdoc.DecodeXML([]byte(namespacedXML))
	require.NoError(t, err)

	// Document-order first match: PartA_OI's copy, not ScheduleBP's.
	hit := root.Find("AmtDisallUs40A3")
	require.NotNil(t, hit)
	assert.Equal(t, "2500.00", root.FindText("AmtDisallUs40A3"))
}

func TestNode_Find_MatchesSelf(t *testing.T) {
	root, err := rawdoc.DecodeXML([]byte(`<Amount>10</Amount>`))
	require.NoError(t, err)
	assert.Equal(t, root, root.Find("Amount"))
}

func TestNode_FindAll(t *testing.T) {
	root, err := rawdoc.DecodeXML([]byte(namespacedXML))
	require.NoError(t, err)

	hits := root.FindAll("AmtDisallUs40A3")
	require.Len(t, hits, 2)
}

func TestNode_FindText_TrimsAndDefaults(t *testing.T) {
	root, err := rawdoc.DecodeXML([]byte(namespacedXML))
	require.NoError(t, err)

	assert.Equal(t, "2500.00", root.FindText("AmtDisallUs40A3"))
	assert.Equal(t, "", root.FindText("NoSuchTag"))
}

func TestNode_NilReceiverChains(t *testing.T) {
	var n *rawdoc.Node
	assert.Nil(t, n.Find("Anything"))
	assert.Nil(t, n.FindAll("Anything"))
	assert.Equal(t, "", n.FindText("Anything"))

	root, err := rawdoc.DecodeXML([]byte(`<Root/>`))
	require.NoError(t, err)
	// A miss mid-chain degrades to "" instead of panicking.
	assert.Equal(t, "", root.Find("Missing").FindText("AlsoMissing"))
}
