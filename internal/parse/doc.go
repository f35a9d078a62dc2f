// Package parse extracts structured observations from gift broadcast text.
//
// Two message shapes are recognized: sale notices ("Gift Sold ...") and floor
// price updates ("<name> <delta> TON ..."). Each shape has two parser
// variants behind the same record types:
//   - line-based, for live broadcast text (Sale, Floor)
//   - positional, for bulk historical exports (ExportSale, ExportFloor)
//
// Parsers signal "not this shape" with a false second return. A non-match is
// a normal outcome, not an error.
package parse
