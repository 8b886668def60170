package models

import (
	"fmt"
)

// NodeFilter is a function type used to filter nodes in queries
type NodeFilter func(node *Node) bool

// EdgeFilter is a function type used to filter edges in queries
type EdgeFilter func(edge *Edge) bool

// FindNodeByID returns a node by its ID
func (f *Frame) FindNodeByID(id string) (*Node, error) {
	for i, node := range f.Nodes {
		if node.ID == id {
			return &f.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("node with ID %s not found", id)
}

// FindConnectedNodes returns all nodes directly connected to a node
func (f *Frame) FindConnectedNodes(id string) []Node {
	var result []Node
	linked := make(map[int]bool)

	for _, edge := range f.Edges {
		if edge.SourceID == id {
			linked[edge.Target] = true
		}
		if edge.TargetID == id {
			linked[edge.Source] = true
		}
	}

	for _, node := range f.Nodes {
		if linked[node.Index] {
			result = append(result, node)
		}
	}

	return result
}

// FilterNodes returns nodes that match the provided filter function
func (f *Frame) FilterNodes(filter NodeFilter) []Node {
	var result []Node
	for i, node := range f.Nodes {
		if filter(&f.Nodes[i]) {
			result = append(result, node)
		}
	}
	return result
}

// FilterEdges returns edges that match the provided filter function
func (f *Frame) FilterEdges(filter EdgeFilter) []Edge {
	var result []Edge
	for i, edge := range f.Edges {
		if filter(&f.Edges[i]) {
			result = append(result, edge)
		}
	}
	return result
}
