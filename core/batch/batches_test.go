package batch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikmak/mongo-datamover/core/codec"
)

func docOfSize(n int) codec.Document {
	return codec.Document(make([]byte, n))
}

func docsOfSizes(sizes ...int) []codec.Document {
	docs := make([]codec.Document, 0, len(sizes))
	for _, size := range sizes {
		docs = append(docs, docOfSize(size))
	}
	return docs
}

func TestBatches(t *testing.T) {
	t.Run("empty input yields no batches", func(t *testing.T) {
		batches := NewBatches(nil, Budget{MaxDocumentBytes: 100, MaxBatchCount: 10})
		assert.Nil(t, batches.Next())
		assert.Equal(t, 0, batches.Size())
	})

	t.Run("byte budget respected", func(t *testing.T) {
		batches := Split(docsOfSizes(40, 40, 40, 40, 40), Budget{MaxDocumentBytes: 100})
		require.Len(t, batches, 3)
		for _, batch := range batches[:2] {
			assert.Len(t, batch, 2)
		}
		assert.Len(t, batches[2], 1)
	})

	t.Run("count budget respected", func(t *testing.T) {
		batches := Split(docsOfSizes(1, 1, 1, 1, 1), Budget{MaxDocumentBytes: 1000, MaxBatchCount: 2})
		require.Len(t, batches, 3)
		assert.Len(t, batches[0], 2)
		assert.Len(t, batches[1], 2)
		assert.Len(t, batches[2], 1)
	})

	t.Run("oversized document becomes its own batch", func(t *testing.T) {
		testCases := []struct {
			name  string
			sizes []int
			want  []int // documents per batch
		}{
			{"oversized first", []int{200, 10, 10}, []int{1, 2}},
			{"oversized middle", []int{10, 200, 10}, []int{1, 1, 1}},
			{"oversized last", []int{10, 10, 200}, []int{2, 1}},
			{"only oversized", []int{200}, []int{1}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				batches := Split(docsOfSizes(tc.sizes...), Budget{MaxDocumentBytes: 100, MaxBatchCount: 10})
				require.Len(t, batches, len(tc.want))
				for i, batch := range batches {
					assert.Len(t, batch, tc.want[i])
				}
			})
		}
	})

	t.Run("multi-document batches stay within budget", func(t *testing.T) {
		budget := Budget{MaxDocumentBytes: 64, MaxBatchCount: 4}
		batches := Split(docsOfSizes(30, 30, 30, 10, 10, 10, 10, 10, 70, 5), budget)
		for _, batch := range batches {
			if len(batch) == 1 {
				continue
			}
			var total int
			for _, doc := range batch {
				total += doc.Size()
			}
			assert.LessOrEqual(t, total, budget.MaxDocumentBytes)
			assert.LessOrEqual(t, len(batch), budget.MaxBatchCount)
		}
	})

	t.Run("concatenating batches reproduces the input", func(t *testing.T) {
		docs := docsOfSizes(30, 70, 10, 200, 1, 1, 1, 99, 50, 50)
		var got []codec.Document
		for _, batch := range Split(docs, Budget{MaxDocumentBytes: 100, MaxBatchCount: 3}) {
			got = append(got, batch...)
		}
		require.True(t, cmp.Equal(docs, got), "split/concat must round-trip the input")
	})

	t.Run("forward-only iteration", func(t *testing.T) {
		batches := NewBatches(docsOfSizes(1, 1, 1), Budget{MaxBatchCount: 2})
		require.Equal(t, 3, batches.Size())

		first := batches.Next()
		require.Len(t, first, 2)
		require.Equal(t, 1, batches.Size())

		second := batches.Next()
		require.Len(t, second, 1)
		require.Equal(t, 0, batches.Size())

		require.Nil(t, batches.Next())
	})

	t.Run("unbounded budget yields one batch", func(t *testing.T) {
		batches := Split(docsOfSizes(100, 100, 100), Budget{})
		require.Len(t, batches, 1)
		assert.Len(t, batches[0], 3)
	})
}
