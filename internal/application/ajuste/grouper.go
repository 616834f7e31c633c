package ajuste

// AgruparPorProyecto particiona los candidatos por proyecto (con el bucket sin
// asignar como grupo propio). Cada candidato cae en exactamente un grupo, el
// orden dentro del grupo preserva el orden de entrada y los grupos salen en
// orden de primera aparición.
func AgruparPorProyecto(candidatos []Candidato) []Grupo {
	indice := make(map[string]int)
	var grupos []Grupo
	for _, c := range candidatos {
		clave := "(sin asignar)"
		if c.ProyectoID != nil {
			clave = *c.ProyectoID
		}
		i, ok := indice[clave]
		if !ok {
			i = len(grupos)
			indice[clave] = i
			grupos = append(grupos, Grupo{ProyectoID: c.ProyectoID, NombreProyecto: c.NombreProyecto})
		}
		grupos[i].Candidatos = append(grupos[i].Candidatos, c)
	}
	return grupos
}
