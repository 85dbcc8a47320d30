package parse

// Analyzer receives callbacks while the parser builds the parse tree.
// Enter is called when a token or production node is entered, Exit
// when it is left; Exit may return a replacement node, or nil to
// discard the subtree. Child is called as each child is attached to a
// production.
//
// Callback errors are collected as analysis errors at the current
// location; they do not trigger error recovery. Productions flagged
// synthetic bypass callbacks entirely and their children are spliced
// into the grandparent.
type Analyzer interface {
	Enter(node Node) error
	Exit(node Node) (Node, error)
	Child(parent *Production, child Node) error
}

// NopAnalyzer is an Analyzer that keeps every node unchanged. Embed
// it to implement only the callbacks of interest.
type NopAnalyzer struct{}

// Enter does nothing.
func (NopAnalyzer) Enter(Node) error { return nil }

// Exit keeps the node.
func (NopAnalyzer) Exit(node Node) (Node, error) { return node, nil }

// Child does nothing.
func (NopAnalyzer) Child(*Production, Node) error { return nil }
