package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Mock returns a fixed three-module roadmap for any topic, with a chatbot greeting.
type Mock struct{}

type mockNode struct {
	Title       string     `json:"title"`
	Role        string     `json:"role"`
	Explanation string     `json:"explanation"`
	Task        string     `json:"task,omitempty"`
	Quiz        string     `json:"quiz,omitempty"`
	Children    []mockNode `json:"children,omitempty"`
}

type chatbot struct {
	Message string   `json:"message"`
	Actions []string `json:"actions"`
}

func leaf(title, explanation, task, quiz string) mockNode {
	return mockNode{Title: title, Role: "leaf", Explanation: explanation, Task: task, Quiz: quiz}
}

func (Mock) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(req.Topic)

	tree := mockNode{
		Title:       titleCase(topic),
		Role:        "root",
		Explanation: fmt.Sprintf("Mastering %s from foundational concepts to advanced techniques.", topic),
		Children: []mockNode{
			{
				Title:       "Foundations of " + topic,
				Role:        "parent",
				Explanation: "Core principles and basic building blocks.",
				Children: []mockNode{
					leaf("Intro to "+topic, "Basic overview.", "Write a summary", "Define it."),
					leaf("Basic syntax", "Grammar and usage.", "Print 'Hello'", "What's the syntax?"),
					leaf("Environment setup", "Tools and IDEs.", "Install tools", "Which IDE?"),
				},
			},
			{
				Title:       "Intermediate " + topic + " Concepts",
				Role:        "parent",
				Explanation: "Moving beyond basics into practical logic.",
				Children: []mockNode{
					leaf("Data structures", "Organizing data.", "Create a list", "Name one structure."),
					leaf("Control flow", "Logic and loops.", "Write a loop", "What is 'if'?"),
					leaf("Functions", "Reusable code.", "Define a function", "How to call it?"),
				},
			},
			{
				Title:       "Advanced " + topic + " mastery",
				Role:        "parent",
				Explanation: "Professional level optimization and patterns.",
				Children: []mockNode{
					leaf("Optimization", "Making it fast.", "Refactor code", "What is Big O?"),
					leaf("Architecture", "Large scale design.", "Draw a diagram", "Name a pattern."),
					leaf("Deployment", "Going live.", "Deploy app", "What is CI/CD?"),
				},
			},
		},
	}

	return json.Marshal(struct {
		Tree    mockNode `json:"tree"`
		Chatbot chatbot  `json:"chatbot"`
	}{
		Tree: tree,
		Chatbot: chatbot{
			Message: fmt.Sprintf("Welcome to your complete %s roadmap! There are %d nodes to explore.", topic, countNodes(tree)),
			Actions: []string{"Start with first node", "Show path overview", "Explain goal"},
		},
	})
}

func countNodes(n mockNode) int {
	c := 1
	for _, ch := range n.Children {
		c += countNodes(ch)
	}
	return c
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
