// Package markup renders the constrained markdown dialect produced by the AI
// assistant (headers, flat lists, bold, italic, paragraphs and blank-line
// breaks) into HTML that is safe to insert into a page.
//
// Rendering runs in four forward stages: Classify turns each line into a
// LineToken, Assemble groups tokens into Blocks that still hold raw text,
// Resolve splits that text into Text, Strong and Emphasis spans through
// ResolveInline, and RenderBlocks writes the final markup. Callers normally
// only use Render.
//
// Every function in this package is pure and safe for concurrent use.
// Malformed input never fails; it degrades to escaped literal text.
package markup
