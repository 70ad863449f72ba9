// Package mdast defines the CommonMark document tree.
//
// A Tree is an arena of nodes addressed by NodeID. Parent, child and
// sibling relations are NodeIDs into the same arena, so splicing nodes
// around is index rewiring. Node 0 is always the document.
package mdast
