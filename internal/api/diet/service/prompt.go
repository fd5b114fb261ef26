package dietService

import (
	"DietApp/internal/api/diet"
	"DietApp/pkg/somatotype"
	"fmt"
	"strconv"
)

const noMedicalConditions = "Ninguna reportada."

const promptTemplate = `
[ROL]
Eres un nutricionista experto clínico y deportivo.

[PERFIL DEL USUARIO]
- Ubicación: %s (Prioridad: Alimentos locales y económicos).
- Biometría: %s, %d años, %skg, %scm.
- Nivel de actividad: %s.
- BMR: %d kcal.
- Objetivo: %s.
- Somatotipo: Endo %s / Meso %s / Ecto %s (perfil dominante: %s).
- Condiciones Médicas: "%s" (RESPETAR ESTRICTAMENTE).

[DIRECTRICES DE GENERACIÓN - CRÍTICO]

1. ECONOMÍA Y SUPLEMENTACIÓN:
   - PROHIBIDO RECETAR SUPLEMENTOS (Whey, Creatina, etc.) a menos que sea médicamente inevitable.
   - Prioriza FUENTES NATURALES: Huevos, pollo, carne, legumbres, lácteos.
   - La dieta debe ser ECONÓMICA y accesible en %s.

2. PRECISIÓN ABSOLUTA DE MEDIDAS:
   - NUNCA uses términos vagos como "un poco", "una porción", "a gusto".
   - SIEMPRE especifica la cantidad VISUAL y MÉTRICA.
   - MALO: "Arroz con pollo" o "1/2 taza de avena".
   - BUENO: "150g de Pechuga de Pollo (tamaño de una mano abierta)" o "40g de Avena (4 cucharadas soperas)".
   - Para unidades (frutas, huevos): Especifica tamaño (ej. "1 unidad MEDIANA").

3. ESTRATEGIA SEMANAL 5+2 (FLEXIBILIDAD):
   - Días 1 a 5 (Lunes-Viernes): Dieta ESTRICTA y detallada para cumplir el objetivo.
   - Días 6 y 7 (Fines de Semana): DÍAS DE CONTROL FLEXIBLE (NO dieta estricta).
   - Para los días 6 y 7, en lugar de recetas específicas, da PAUTAS GENERALES de comportamiento.

[TAREA]
Genera el plan semanal JSON siguiendo la estructura exacta abajo.

[FORMATO JSON REQUERIDO]
Responde SOLO con un JSON válido:
{
  "analisis_inicial": {
    "interpretacion_somatotipo": "...",
    "estrategia_economica": "Breve nota sobre cómo esta dieta cuida el bolsillo y evita suplementos."
  },
  "resumen_nutricional": {
    "calorias_diarias_objetivo": <int>,
    "macros": { "proteina_g": <int>, "carbos_g": <int>, "grasa_g": <int> }
  },
  "plan_semanal_rotativo": {
    "dia_1": { "desayuno": "...", "almuerzo": "...", "cena": "...", "snack": "..." },
    "dia_2": { "desayuno": "...", "almuerzo": "...", "cena": "...", "snack": "..." },
    "dia_3": { "desayuno": "...", "almuerzo": "...", "cena": "...", "snack": "..." },
    "dia_4": { "desayuno": "...", "almuerzo": "...", "cena": "...", "snack": "..." },
    "dia_5": { "desayuno": "...", "almuerzo": "...", "cena": "...", "snack": "..." },
    "dia_6_flexible": { "desayuno": "LIBRE: ...", "almuerzo": "LIBRE: ...", "cena": "LIGERA: ...", "snack": "Opcional" },
    "dia_7_flexible": { "desayuno": "LIBRE: ...", "almuerzo": "LIBRE: ...", "cena": "LIGERA: ...", "snack": "Opcional" }
  },
  "lista_compras_semanal": ["item1", "item2"]
}
`

// BuildPrompt renders the Spanish nutritionist prompt for one profile.
func BuildPrompt(p diet.DietProfile, scores somatotype.Scores, dominant somatotype.DominantType, bmr int) string {
	medical := p.MedicalConditions
	if medical == "" {
		medical = noMedicalConditions
	}

	return fmt.Sprintf(promptTemplate,
		p.Location(),
		p.Gender, p.Age, formatNumber(p.WeightKg), formatNumber(p.HeightCm),
		p.ActivityLevel,
		bmr,
		p.Goal,
		formatNumber(scores.Endomorphy), formatNumber(scores.Mesomorphy), formatNumber(scores.Ectomorphy), dominant,
		medical,
		p.Country,
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
