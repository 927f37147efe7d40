package template

import "github.com/arborhq/arbor/pkg/models"

// Standard returns the built-in skeleton template: one root, one global
// orchestrator, four domain orchestrators, twelve area orchestrators, and
// two managers per area. Levels 0-4 only; deeper levels spawn lazily.
func Standard() []models.TemplateNode {
	nodes := []models.TemplateNode{
		skeletonNode("BossAgent", "boss", 0, "all", "", 3),
		skeletonNode("GlobalOrchestrator", "orchestrator", 1, "coordination,planning", "BossAgent", 8),
	}

	type area struct {
		name  string
		scope string
	}
	domains := []struct {
		name  string
		scope string
		areas []area
	}{
		{"FrontendOrchestrator", "frontend,ui", []area{
			{"ComponentAreaOrchestrator", "frontend,components,ui"},
			{"StateAreaOrchestrator", "frontend,state,data"},
			{"StylingAreaOrchestrator", "frontend,styling,css"},
		}},
		{"BackendOrchestrator", "backend,api", []area{
			{"APIAreaOrchestrator", "backend,api,endpoints"},
			{"DatabaseAreaOrchestrator", "backend,database,schema"},
			{"ServicesAreaOrchestrator", "backend,services,integration"},
		}},
		{"InfrastructureOrchestrator", "infrastructure,deployment", []area{
			{"DeploymentAreaOrchestrator", "infrastructure,deployment,pipeline"},
			{"MonitoringAreaOrchestrator", "infrastructure,monitoring,alerts"},
			{"SecurityAreaOrchestrator", "infrastructure,security,auth"},
		}},
		{"QualityOrchestrator", "quality,testing", []area{
			{"TestingAreaOrchestrator", "quality,testing,coverage"},
			{"ReviewAreaOrchestrator", "quality,review,standards"},
			{"PerformanceAreaOrchestrator", "quality,performance,profiling"},
		}},
	}

	managers := map[string][]area{
		"ComponentAreaOrchestrator": {
			{"ComponentBuildManager", "frontend,components,build"},
			{"ComponentLibraryManager", "frontend,components,library"},
		},
		"StateAreaOrchestrator": {
			{"StateStoreManager", "frontend,state,store"},
			{"DataFlowManager", "frontend,state,flow"},
		},
		"StylingAreaOrchestrator": {
			{"ThemeManager", "frontend,styling,theme"},
			{"LayoutManager", "frontend,styling,layout"},
		},
		"APIAreaOrchestrator": {
			{"EndpointManager", "backend,api,endpoints"},
			{"ContractManager", "backend,api,contracts"},
		},
		"DatabaseAreaOrchestrator": {
			{"SchemaManager", "backend,database,schema"},
			{"MigrationManager", "backend,database,migrations"},
		},
		"ServicesAreaOrchestrator": {
			{"IntegrationManager", "backend,services,integration"},
			{"QueueManager", "backend,services,queue"},
		},
		"DeploymentAreaOrchestrator": {
			{"PipelineManager", "infrastructure,deployment,pipeline"},
			{"ReleaseManager", "infrastructure,deployment,release"},
		},
		"MonitoringAreaOrchestrator": {
			{"MetricsManager", "infrastructure,monitoring,metrics"},
			{"AlertManager", "infrastructure,monitoring,alerts"},
		},
		"SecurityAreaOrchestrator": {
			{"AccessManager", "infrastructure,security,access"},
			{"AuditManager", "infrastructure,security,audit"},
		},
		"TestingAreaOrchestrator": {
			{"UnitTestManager", "quality,testing,unit"},
			{"E2ETestManager", "quality,testing,e2e"},
		},
		"ReviewAreaOrchestrator": {
			{"CodeReviewManager", "quality,review,code"},
			{"DocsReviewManager", "quality,review,docs"},
		},
		"PerformanceAreaOrchestrator": {
			{"LoadTestManager", "quality,performance,load"},
			{"ProfilingManager", "quality,performance,profiling"},
		},
	}

	for _, d := range domains {
		nodes = append(nodes, skeletonNode(d.name, "orchestrator", 2, d.scope, "GlobalOrchestrator", 6))
		for _, a := range d.areas {
			nodes = append(nodes, skeletonNode(a.name, "orchestrator", 3, a.scope, d.name, 6))
			for _, m := range managers[a.name] {
				nodes = append(nodes, skeletonNode(m.name, "manager", 4, m.scope, a.name, 5))
			}
		}
	}

	return nodes
}

func skeletonNode(name, agentType string, level int, scope, parent string, fanout int) models.TemplateNode {
	return models.TemplateNode{
		Name:                name,
		AgentType:           agentType,
		Level:               level,
		Scope:               scope,
		Parent:              parent,
		MaxFanout:           fanout,
		MaxDepthBelow:       models.WorkerLevel - level,
		EscalationThreshold: 3,
		ContextIsolation:    level > 1,
		HistoryIsolation:    level > 2,
		Permissions:         []string{"delegate", "escalate"},
	}
}
