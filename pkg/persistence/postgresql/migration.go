package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE workflows (
				id UUID PRIMARY KEY,
				team_id VARCHAR(255) NOT NULL,
				created_by VARCHAR(255),
				name VARCHAR(255) NOT NULL,
				description TEXT,
				enabled BOOLEAN NOT NULL DEFAULT true,
				trigger_type VARCHAR(64) NOT NULL,
				trigger_config JSONB NOT NULL DEFAULT '{}',
				conditions JSONB NOT NULL DEFAULT '[]',
				actions JSONB NOT NULL DEFAULT '[]',
				execution_history JSONB NOT NULL DEFAULT '[]',
				total_executions BIGINT NOT NULL DEFAULT 0,
				successful_executions BIGINT NOT NULL DEFAULT 0,
				failed_executions BIGINT NOT NULL DEFAULT 0,
				last_executed TIMESTAMP WITH TIME ZONE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_workflows_team_id ON workflows(team_id);
			CREATE INDEX idx_workflows_trigger_type ON workflows(trigger_type);
			CREATE INDEX idx_workflows_enabled ON workflows(enabled);

			CREATE TABLE deals (
				id UUID PRIMARY KEY,
				team_id VARCHAR(255) NOT NULL,
				fields JSONB NOT NULL DEFAULT '{}',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_deals_team_id ON deals(team_id);

			CREATE TABLE tasks (
				id UUID PRIMARY KEY,
				team_id VARCHAR(255) NOT NULL,
				deal_id UUID,
				assignee_id VARCHAR(255),
				title VARCHAR(512) NOT NULL,
				description TEXT,
				due_date TIMESTAMP WITH TIME ZONE,
				completed BOOLEAN NOT NULL DEFAULT false,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_tasks_team_id ON tasks(team_id);
			CREATE INDEX idx_tasks_deal_id ON tasks(deal_id);
		`,
	}
}
