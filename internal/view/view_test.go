package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/view"
)

func sampleBoard() model.Board {
	b := model.NewBoard()
	b.Set(model.Position{Row: 0, Col: 0}, model.X)
	b.Set(model.Position{Row: 1, Col: 1}, model.O)
	return b
}

func TestCellsRowMajorWithIDs(t *testing.T) {
	cells := view.Cells(sampleBoard(), nil)

	require.Len(t, cells, 9)
	assert.Equal(t, "cell-0-0", cells[0].ID)
	assert.Equal(t, "X", cells[0].Text)
	assert.Equal(t, "cell-1-1", cells[4].ID)
	assert.Equal(t, "O", cells[4].Text)
	assert.Equal(t, "cell-2-2", cells[8].ID)
	assert.Equal(t, "", cells[8].Text)
	assert.Nil(t, cells[0].Activate)
}

func TestCellsActivateWithOwnPosition(t *testing.T) {
	var got []model.Position
	move := func(_ context.Context, pos model.Position) error {
		got = append(got, pos)
		return nil
	}

	cells := view.Cells(model.NewBoard(), move)
	for _, c := range cells {
		require.NoError(t, c.Activate(context.Background()))
	}

	require.Len(t, got, 9)
	for i, pos := range got {
		assert.Equal(t, model.Position{Row: i / 3, Col: i % 3}, pos)
	}
}

func TestWriteGrid(t *testing.T) {
	var buf bytes.Buffer
	view.WriteGrid(&buf, sampleBoard())

	expected := strings.Join([]string{
		"     0  1  2 ",
		"   +---------+",
		" 0 | X  .  . |",
		" 1 | .  O  . |",
		" 2 | .  .  . |",
		"   +---------+",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestTextHiddenUntilShown(t *testing.T) {
	var buf bytes.Buffer
	v := view.NewText(&buf)

	v.Render(view.Cells(sampleBoard(), nil))
	assert.Empty(t, buf.String())
	assert.False(t, v.Visible())

	v.ShowBoard()
	v.Render(view.Cells(sampleBoard(), nil))
	assert.Contains(t, buf.String(), " 0 | X  .  . |")
}

func TestTextUpdateKeepsHandlers(t *testing.T) {
	var buf bytes.Buffer
	v := view.NewText(&buf)
	v.ShowBoard()

	var clicked model.Position
	v.Render(view.Cells(model.NewBoard(), func(_ context.Context, pos model.Position) error {
		clicked = pos
		return nil
	}))

	v.Update(sampleBoard())
	assert.Contains(t, buf.String(), " 1 | .  O  . |")

	require.NoError(t, v.Click(context.Background(), model.Position{Row: 2, Col: 1}))
	assert.Equal(t, model.Position{Row: 2, Col: 1}, clicked)
}

func TestTextClickWithoutRender(t *testing.T) {
	v := view.NewText(&bytes.Buffer{})

	err := v.Click(context.Background(), model.Position{Row: 0, Col: 0})
	assert.ErrorIs(t, err, model.ErrInvalidPosition)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	err := view.WriteHTML(t.Context(), &buf, view.HTMLData{RoomID: "abc", Visible: true, Board: sampleBoard()})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("#createRoomButton").Length())
	assert.Equal(t, 1, doc.Find("#joinRoomButton").Length())
	assert.Equal(t, 1, doc.Find("#restartGameButton").Length())

	gameBoard := doc.Find("#gameBoard")
	require.Equal(t, 1, gameBoard.Length())
	style, _ := gameBoard.Attr("style")
	assert.Contains(t, style, "block")
	room, _ := gameBoard.Attr("data-room")
	assert.Equal(t, "abc", room)

	cells := doc.Find("#board .cell")
	assert.Equal(t, 9, cells.Length())
	assert.Equal(t, "X", doc.Find("#cell-0-0").Text())
	assert.Equal(t, "O", doc.Find("#cell-1-1").Text())
	assert.Equal(t, "", doc.Find("#cell-2-2").Text())

	row, _ := doc.Find("#cell-1-2").Attr("data-row")
	col, _ := doc.Find("#cell-1-2").Attr("data-col")
	assert.Equal(t, "1", row)
	assert.Equal(t, "2", col)
}

func TestWriteHTMLHidden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.WriteHTML(t.Context(), &buf, view.HTMLData{Board: model.NewBoard()}))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	style, _ := doc.Find("#gameBoard").Attr("style")
	assert.Contains(t, style, "none")
	_, hasRoom := doc.Find("#gameBoard").Attr("data-room")
	assert.False(t, hasRoom)
}

func TestWriteHTMLEscapesMarkers(t *testing.T) {
	b := model.NewBoard()
	b.Set(model.Position{Row: 0, Col: 0}, model.Marker("<b>"))

	var buf bytes.Buffer
	require.NoError(t, view.WriteHTML(t.Context(), &buf, view.HTMLData{Board: b}))

	assert.NotContains(t, buf.String(), "<b>")
	assert.Contains(t, buf.String(), "&lt;b&gt;")
}

func TestWriteHTMLEscapesRoomID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.WriteHTML(t.Context(), &buf, view.HTMLData{RoomID: `a"><script>`, Visible: true}))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("script").Length())
	room, _ := doc.Find("#gameBoard").Attr("data-room")
	assert.Equal(t, `a"><script>`, room)
}

func TestFragmentRendersAsComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.Fragment(view.HTMLData{Visible: true, Board: sampleBoard()}).Render(t.Context(), &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 9, doc.Find("#gameBoard #board .cell").Length())
	assert.Equal(t, 1, doc.Find("#controls #restartGameButton").Length())
}
