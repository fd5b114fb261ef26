package analysisRepository

const (
	queryCreateAnalysis = `
		INSERT INTO body_analyses (
			id,
			source,
			weight_kg,
			height_cm,
			age,
			gender,
			shoulder_width_cm,
			hip_width_cm,
			torso_length_cm,
			scale_cm_per_px,
			meso_scale,
			endomorphy,
			mesomorphy,
			ectomorphy,
			dominant,
			bmr,
			photo_url,
			created_at
		) VALUES (
			:id,
			:source,
			:weight_kg,
			:height_cm,
			:age,
			:gender,
			:shoulder_width_cm,
			:hip_width_cm,
			:torso_length_cm,
			:scale_cm_per_px,
			:meso_scale,
			:endomorphy,
			:mesomorphy,
			:ectomorphy,
			:dominant,
			:bmr,
			:photo_url,
			:created_at
		)
	`

	queryGetAnalysisByID = `
		SELECT
			id,
			source,
			weight_kg,
			height_cm,
			age,
			gender,
			shoulder_width_cm,
			hip_width_cm,
			torso_length_cm,
			scale_cm_per_px,
			meso_scale,
			endomorphy,
			mesomorphy,
			ectomorphy,
			dominant,
			bmr,
			photo_url,
			created_at
		FROM body_analyses
		WHERE id = :id
	`

	queryListRecentAnalyses = `
		SELECT
			id,
			source,
			weight_kg,
			height_cm,
			age,
			gender,
			shoulder_width_cm,
			hip_width_cm,
			torso_length_cm,
			scale_cm_per_px,
			meso_scale,
			endomorphy,
			mesomorphy,
			ectomorphy,
			dominant,
			bmr,
			photo_url,
			created_at
		FROM body_analyses
		ORDER BY created_at DESC
		LIMIT :limit
	`
)
