// Package definition loads declarative layout files written in HCL and
// applies them to a layout through the engine.
//
// A definition consists of an optional `layout` block and any number of
// `part` blocks, each holding `view` blocks:
//
//	layout {
//	  main_area = true
//	}
//
//	part "part.left" {
//	  relative_to = "part.initial"
//	  align       = "left"
//	  ratio       = 0.25
//
//	  view "view.1" {
//	    path     = ["search"]
//	    data     = { mode = "compact" }
//	    activate = true
//	  }
//	}
//
// Blocks are applied in file order, files in path order. A part block naming
// an existing part only contributes its views.
package definition
