package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/studymesh/studymesh/core"
)

// GeneralAgent is the name of the built-in fallback agent.
const GeneralAgent = "tutor"

// DefaultCatalog returns the built-in agent identities. The tutor handles
// broad conceptual Q&A and is the router's fallback for ambiguous requests.
func DefaultCatalog() []Identity {
	return []Identity{
		{
			Name:        "tutor",
			Description: "Explains course concepts, answers general study questions and works from supplied materials and notes.",
			Instruction: "You are a patient course tutor. Explain concepts clearly, ground answers in the student's materials and notes when available, and prefer worked examples over abstract definitions.",
			Tools: []string{
				core.ToolSearchMaterials,
				core.ToolSearchNotes,
				core.ToolFindResources,
				core.ToolCallAgent,
			},
		},
		{
			Name:        "planner",
			Description: "Plans study schedules, estimates study time and checks upcoming deadlines.",
			Instruction: "You are a study planner. Build realistic schedules around the student's deadlines, estimate study time honestly, and call out conflicts instead of papering over them.",
			Tools: []string{
				core.ToolCalculateStudyTime,
				core.ToolCheckCalendar,
				core.ToolCreateTask,
				core.ToolUpdateSchedule,
				core.ToolCallAgent,
			},
		},
		{
			Name:        "librarian",
			Description: "Finds and summarizes passages from the student's course materials and notes.",
			Instruction: "You are a course librarian. Locate the most relevant passages in the student's materials and notes, quote them briefly, and always name the source you drew from.",
			Tools: []string{
				core.ToolSearchMaterials,
				core.ToolSearchNotes,
				core.ToolCallAgent,
			},
		},
		{
			Name:        "coach",
			Description: "Prepares students for exams with flashcards, practice structure and revision advice.",
			Instruction: "You are an exam coach. Turn material into practice: flashcards, recall questions and a concrete revision sequence. Be encouraging but specific.",
			Tools: []string{
				core.ToolGenerateFlashcards,
				core.ToolSearchMaterials,
				core.ToolCalculateStudyTime,
				core.ToolCallAgent,
			},
		},
		{
			Name:        "scout",
			Description: "Suggests external learning resources for a topic.",
			Instruction: "You are a resource scout. Recommend a small number of high-quality external resources for the topic at hand and say what each one is good for.",
			Tools: []string{
				core.ToolFindResources,
			},
		},
	}
}

// NewDefault builds a registry from the built-in catalog.
func NewDefault() *Registry {
	r, err := New(GeneralAgent, DefaultCatalog()...)
	if err != nil {
		// The built-in catalog is validated by tests; a failure here is a bug.
		panic(err)
	}
	return r
}

// catalogFile is the YAML document shape accepted by LoadCatalog.
type catalogFile struct {
	General string     `yaml:"general"`
	Agents  []Identity `yaml:"agents"`
}

// LoadCatalog reads an agent catalog from a YAML file so deployments can
// override personas without a rebuild. The file must name the general agent
// and its agents must declare known tool names.
func LoadCatalog(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a registry from YAML catalog bytes.
func ParseCatalog(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if file.General == "" {
		return nil, fmt.Errorf("catalog missing general agent")
	}
	known := map[string]bool{
		core.ToolSearchMaterials:    true,
		core.ToolSearchNotes:        true,
		core.ToolCalculateStudyTime: true,
		core.ToolCheckCalendar:      true,
		core.ToolCreateTask:         true,
		core.ToolUpdateSchedule:     true,
		core.ToolGenerateFlashcards: true,
		core.ToolFindResources:      true,
		core.ToolCallAgent:          true,
	}
	for _, agent := range file.Agents {
		for _, t := range agent.Tools {
			if !known[t] {
				return nil, fmt.Errorf("agent %q references unknown tool %q", agent.Name, t)
			}
		}
	}
	return New(file.General, file.Agents...)
}
