package launcher

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/todopush/internal/google"
	"github.com/teemow/todopush/internal/sanitize"
	"github.com/teemow/todopush/internal/todo"
)

type fakeAdder struct {
	calls []string
	err   error
}

func (f *fakeAdder) Add(ctx context.Context, raw string) (*todo.Receipt, error) {
	f.calls = append(f.calls, raw)
	if f.err != nil {
		return nil, f.err
	}
	return &todo.Receipt{ID: "note-1", Title: raw, Service: "keep"}, nil
}

func runLoop(t *testing.T, adder Adder, input string) []Response {
	t.Helper()

	loop, err := NewLoop(adder, "Google Keep", "todo", nil)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, loop.Run(context.Background(), strings.NewReader(input), &out))

	var responses []Response
	sc := bufio.NewScanner(strings.NewReader(out.String()))
	for sc.Scan() {
		var resp Response
		require.NoError(t, json.Unmarshal(sc.Bytes(), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestQuery(t *testing.T) {
	adder := &fakeAdder{}
	responses := runLoop(t, adder, `{"type":"query","keyword":"todo","argument":"Buy milk"}`+"\n")

	require.Len(t, responses, 1)
	require.Len(t, responses[0].Items, 1)
	item := responses[0].Items[0]
	assert.Equal(t, "Buy milk", item.Title)
	assert.True(t, item.Submit)
	assert.Equal(t, "Buy milk", item.Argument)
	assert.Empty(t, adder.calls, "query must not submit")
}

func TestQuery_EmptyArgument(t *testing.T) {
	responses := runLoop(t, &fakeAdder{}, `{"type":"query","keyword":"todo","argument":"  "}`+"\n")

	require.Len(t, responses, 1)
	require.Len(t, responses[0].Items, 1)
	assert.False(t, responses[0].Items[0].Submit)
}

func TestSelect(t *testing.T) {
	adder := &fakeAdder{}
	responses := runLoop(t, adder, `{"type":"select","argument":"Buy milk"}`+"\n")

	require.Len(t, responses, 1)
	assert.True(t, responses[0].OK)
	assert.Equal(t, "note-1", responses[0].ID)
	assert.Equal(t, []string{"Buy milk"}, adder.calls)
}

func TestSelect_AdderError(t *testing.T) {
	adder := &fakeAdder{err: sanitize.ErrEmptyInput}
	responses := runLoop(t, adder, `{"type":"select","argument":""}`+"\n")

	require.Len(t, responses, 1)
	assert.False(t, responses[0].OK)
	assert.NotEmpty(t, responses[0].Error)
}

func TestMalformedLineDoesNotStopLoop(t *testing.T) {
	adder := &fakeAdder{}
	input := "not json\n" + `{"type":"select","argument":"Buy milk"}` + "\n"
	responses := runLoop(t, adder, input)

	require.Len(t, responses, 2)
	assert.Equal(t, "error", responses[0].Type)
	assert.True(t, responses[1].OK)
}

func TestUnknownEventType(t *testing.T) {
	responses := runLoop(t, &fakeAdder{}, `{"type":"ping"}`+"\n")

	require.Len(t, responses, 1)
	assert.Equal(t, "error", responses[0].Type)
	assert.Contains(t, responses[0].Error, "ping")
}

func TestQuery_ConfigCheckFailure(t *testing.T) {
	adder := &fakeAdder{}
	loop, err := NewLoop(adder, "Google Keep", "todo", nil,
		WithConfigCheck(func() error { return google.ErrNoToken }))
	require.NoError(t, err)

	var out strings.Builder
	input := `{"type":"query","argument":"Buy milk"}` + "\n"
	require.NoError(t, loop.Run(context.Background(), strings.NewReader(input), &out))

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out.String()), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Configuration required", resp.Items[0].Title)
	assert.False(t, resp.Items[0].Submit)
}

func TestNewLoop_RequiresAdder(t *testing.T) {
	_, err := NewLoop(nil, "keep", "todo", nil)
	assert.Error(t, err)
}

func TestRun_CanceledContext(t *testing.T) {
	loop, err := NewLoop(&fakeAdder{}, "keep", "todo", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	err = loop.Run(ctx, strings.NewReader(`{"type":"query"}`+"\n"), &out)
	assert.True(t, errors.Is(err, context.Canceled))
}
