package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeDeserialize_RoundTripsMapSnapshot(t *testing.T) {
	t.Parallel()

	snapshot := map[string]any{"total": 6.0, "count": 3.0}

	b, err := Serialize(snapshot)
	require.NoError(t, err)

	got, err := Deserialize(b)
	require.NoError(t, err)
	require.Equal(t, snapshot, got)
}

func TestDeserialize_RejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := Deserialize([]byte("{not json"))
	require.Error(t, err)
}
