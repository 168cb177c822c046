package calculation_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calc "github.com/zephyrtronium/calculation"
)

// historyFactory creates a history store for testing.
type historyFactory func(t *testing.T) calc.History

func entry(session string, seq int, expr, result string) calc.Entry {
	return calc.Entry{
		SessionID:  session,
		Sequence:   seq,
		Expression: expr,
		Result:     result,
		Time:       time.Date(2024, 3, 14, 15, 9, 26, 535897932, time.UTC).Add(time.Duration(seq) * time.Second),
	}
}

// historyContractTest runs the tests every History implementation must pass.
func historyContractTest(t *testing.T, name string, factory historyFactory) {
	t.Run(name+"/Record_and_List", func(t *testing.T) {
		h := factory(t)
		defer h.Close()

		want := []calc.Entry{
			entry("s1", 1, "1+1", "2"),
			entry("s1", 2, "1/0", "Error"),
		}
		for _, e := range want {
			require.NoError(t, h.Record(e))
		}
		got, err := h.List("s1")
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].SessionID, got[i].SessionID)
			assert.Equal(t, want[i].Sequence, got[i].Sequence)
			assert.Equal(t, want[i].Expression, got[i].Expression)
			assert.Equal(t, want[i].Result, got[i].Result)
			assert.True(t, want[i].Time.Equal(got[i].Time), "want %v, got %v", want[i].Time, got[i].Time)
		}
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		h := factory(t)
		defer h.Close()

		got, err := h.List("nobody")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run(name+"/List_Ordered", func(t *testing.T) {
		h := factory(t)
		defer h.Close()

		for _, seq := range []int{3, 1, 4, 2} {
			require.NoError(t, h.Record(entry("s1", seq, fmt.Sprint(seq), fmt.Sprint(seq))))
		}
		got, err := h.List("s1")
		require.NoError(t, err)
		require.Len(t, got, 4)
		for i, e := range got {
			assert.Equal(t, i+1, e.Sequence)
		}
	})

	t.Run(name+"/Record_Overwrite", func(t *testing.T) {
		h := factory(t)
		defer h.Close()

		require.NoError(t, h.Record(entry("s1", 1, "1", "1")))
		require.NoError(t, h.Record(entry("s1", 1, "2", "2")))
		got, err := h.List("s1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "2", got[0].Expression)
	})

	t.Run(name+"/Sessions_Isolated", func(t *testing.T) {
		h := factory(t)
		defer h.Close()

		require.NoError(t, h.Record(entry("s1", 1, "a", "0")))
		require.NoError(t, h.Record(entry("s2", 1, "b", "0")))
		require.NoError(t, h.Record(entry("s2", 2, "c", "0")))

		got, err := h.List("s1")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		got, err = h.List("s2")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run(name+"/List_Copy", func(t *testing.T) {
		h := factory(t)
		defer h.Close()

		require.NoError(t, h.Record(entry("s1", 1, "1", "1")))
		got, err := h.List("s1")
		require.NoError(t, err)
		got[0].Expression = "changed"
		again, err := h.List("s1")
		require.NoError(t, err)
		assert.Equal(t, "1", again[0].Expression)
	})

	t.Run(name+"/Closed", func(t *testing.T) {
		h := factory(t)
		require.NoError(t, h.Close())
		assert.NoError(t, h.Close())

		assert.ErrorIs(t, h.Record(entry("s1", 1, "1", "1")), calc.ErrHistoryClosed)
		_, err := h.List("s1")
		assert.ErrorIs(t, err, calc.ErrHistoryClosed)
	})

	t.Run(name+"/Concurrent", func(t *testing.T) {
		h := factory(t)
		defer h.Close()

		const sessions, calcs = 8, 10
		var wg sync.WaitGroup
		for i := 0; i < sessions; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for seq := 1; seq <= calcs; seq++ {
					assert.NoError(t, h.Record(entry(id, seq, "x", "0")))
				}
			}(fmt.Sprint("s", i))
		}
		wg.Wait()

		for i := 0; i < sessions; i++ {
			got, err := h.List(fmt.Sprint("s", i))
			require.NoError(t, err)
			assert.Len(t, got, calcs)
		}
	})
}

func TestHistoryContract(t *testing.T) {
	historyContractTest(t, "Memory", func(t *testing.T) calc.History {
		return calc.NewMemoryHistory()
	})
	historyContractTest(t, "MemoryZero", func(t *testing.T) calc.History {
		return new(calc.MemoryHistory)
	})
	historyContractTest(t, "SQLite", func(t *testing.T) calc.History {
		h, err := calc.NewSQLiteHistory(":memory:")
		require.NoError(t, err)
		return h
	})
}

func TestSQLiteHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s := calc.NewSession(calc.WithLogger(nil), withSQLiteHistory(t, path))
	s.Calculate("2 * 3 - 1")
	s.Calculate("1 & 2")
	id := s.ID()
	require.NoError(t, s.Close())

	h, err := calc.NewSQLiteHistory(path)
	require.NoError(t, err)
	defer h.Close()

	got, err := h.List(id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2 * 3 - 1", got[0].Expression)
	assert.Equal(t, "5", got[0].Result)
	assert.Equal(t, "1 & 2", got[1].Expression)
	assert.Equal(t, calc.ErrorResult, got[1].Result)
}

func TestSQLiteHistoryInvalidPath(t *testing.T) {
	_, err := calc.NewSQLiteHistory("/nonexistent/path/history.db")
	assert.Error(t, err)
}

func withSQLiteHistory(t *testing.T, path string) calc.Option {
	t.Helper()
	h, err := calc.NewSQLiteHistory(path)
	require.NoError(t, err)
	return calc.WithHistory(h)
}
