package csvutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		want   string
	}{
		{
			name:   "header only",
			header: []string{"ID", "Name"},
			rows:   nil,
			want:   "ID,Name\n",
		},
		{
			name:   "rows",
			header: []string{"ID", "Name"},
			rows:   [][]string{{"1", "Ada"}, {"2", "Grace"}},
			want:   "ID,Name\n1,Ada\n2,Grace\n",
		},
		{
			name:   "fields with commas are quoted",
			header: []string{"Name", "Skills"},
			rows:   [][]string{{"Ada", "Go; SQL, Docker"}},
			want:   "Name,Skills\nAda,\"Go; SQL, Docker\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Write(tt.header, tt.rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}
