package models

// Project is a display grouping for tasks. Projects are fixed app-side;
// tasks reference them by ID.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ProjectInbox is the catch-all project for tasks captured without one.
const ProjectInbox = "inbox"

// DefaultProjects are the built-in projects shown in the sidebar.
var DefaultProjects = []Project{
	{ID: ProjectInbox, Name: "Inbox", Color: "#6366f1", Icon: "📥"},
	{ID: "work", Name: "Work", Color: "#f59e0b", Icon: "💼"},
	{ID: "personal", Name: "Personal", Color: "#10b981", Icon: "🏡"},
	{ID: "health", Name: "Health", Color: "#ef4444", Icon: "💪"},
}
