// Package oneonone runs the document workflow end to end:
//
//	authenticate -> operator name -> collaborator -> confirm -> create -> report
//
// Nothing is written to Google before the operator confirms. Declining, or
// aborting a prompt, ends the run without error.
package oneonone
