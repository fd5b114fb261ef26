package dietRepository

const (
	queryCreatePlan = `
		INSERT INTO diet_plans (
			id,
			analysis_id,
			provider,
			goal,
			activity_level,
			country,
			bmr,
			target_calories,
			predicted_change_kg,
			plan,
			created_at
		) VALUES (
			:id,
			:analysis_id,
			:provider,
			:goal,
			:activity_level,
			:country,
			:bmr,
			:target_calories,
			:predicted_change_kg,
			:plan,
			:created_at
		)
	`

	queryGetPlanByID = `
		SELECT
			id,
			analysis_id,
			provider,
			goal,
			activity_level,
			country,
			bmr,
			target_calories,
			predicted_change_kg,
			plan,
			created_at
		FROM diet_plans
		WHERE id = :id
	`
)
