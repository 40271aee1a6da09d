// Package jigsaw generates the boundary geometry of jigsaw puzzle pieces and
// the board logic to play with them, on top of [Ebitengine].
//
// A puzzle is a rows x cols grid of square tiles. Every cell edge becomes a
// wobbly curve: border edges stay straight, interior edges get a few jittered
// control points and are sampled along a Catmull-Rom spline. Where four
// curves meet, the crossing point is resolved from the sampled polylines, and
// each piece outline is assembled from the four curve sections between its
// corners. Neighbouring pieces share exactly the same points along their
// common edge, so cut pieces fit without gaps.
//
// # Quick start
//
//	g, err := jigsaw.NewGeometry(jigsaw.Config{Rows: 4, Cols: 4, BoardSize: 400})
//	if err != nil {
//		return err
//	}
//	for _, piece := range g.Pieces() {
//		// piece.Path is the closed outline in board coordinates,
//		// piece.Local the same outline relative to piece.Bounds.
//	}
//
// The pipeline stages are also available on their own: [GenerateSegment],
// [SamplePathSegment], [Geometry.FindAllIntersections] and
// [Geometry.PieceBoundary]. Results are cached per grid;
// [Geometry.Regenerate] starts over with a new grid and clears every cache.
//
// # Cutting pictures
//
// [CutPiece] and [RasterizeMask] cut pieces on the CPU with
// golang.org/x/image/vector, and [WritePieces] exports PNGs plus a JSON
// [Manifest] that restores the exact same outlines. On the GPU,
// [NewPieceImage] and [PieceSprites] cut a board-sized [ebiten.Image] by
// drawing each outline as an even-odd filled triangle fan ([Triangulate],
// [PieceMesh]).
//
// # Playing
//
// A [Board] places one piece per cell. [Board.Drop] snaps a released piece
// onto the nearest drop zone within the snap threshold, animating the snap
// with a tween (via [gween]); the puzzle is solved once every piece lies
// within the win tolerance of its own zone. Board events can be forwarded to
// an ECS with the [Donburi] adapter in jigsaw/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package jigsaw
