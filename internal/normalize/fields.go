package normalize

// FieldTable asocia cada campo canónico con los nombres de origen aceptados,
// en orden de precedencia. El primer candidato presente gana.
type FieldTable map[string][]string

// Paths devuelve los candidatos de un campo; nil si el campo no existe.
func (t FieldTable) Paths(field string) []string { return t[field] }

var userIDPaths = []string{"usuarioId", "idUsuario", "ownerId", "userId", "usuario_id", "usuario.id", "usuario.usuarioId"}

var UserFields = FieldTable{
	"id":         {"id", "idUsuario", "usuarioId", "userId"},
	"name":       {"nombreCompleto", "nombre", "name", "username"},
	"email":      {"email", "correo"},
	"password":   {"password", "contrasena"},
	"phone":      {"telefonoCelular", "telefono", "phone"},
	"nationalId": {"curp"},
	"photo":      {"fotoPerfil", "foto", "avatarUrl", "photoUrl"},
}

var PetFields = FieldTable{
	"id":          {"id", "idMascota", "mascotaId"},
	"owner":       userIDPaths,
	"name":        {"nombre", "name"},
	"species":     {"especie", "tipo", "species"},
	"breed":       {"raza", "breed"},
	"gender":      {"genero", "sexo", "gender"},
	"weight":      {"peso", "weight"},
	"vaccinated":  {"vacunado", "vaccinated"},
	"sterilized":  {"esterilizado", "sterilized"},
	"insured":     {"tieneSeguro", "seguro", "insured"},
	"description": {"descripcion", "description"},
	"photo":       {"fotoUrl", "imagenUrl", "urlImagen", "photoUrl", "foto", "imagen"},
}

var PetImageFields = FieldTable{
	"id":         {"id", "idImagen", "imagenId"},
	"pet":        {"mascotaId", "idMascota", "petId", "mascota.id"},
	"url":        {"ruta", "url", "imagePath", "imagen"},
	"uploadedAt": {"fechaSubida", "createdAt", "fechaCreacion"},
}

var TreatmentFields = FieldTable{
	"id":          {"id", "idTratamiento", "tratamientoId"},
	"owner":       userIDPaths,
	"pet":         {"mascotaId", "idMascota", "petId", "mascota.id"},
	"type":        {"tipoTratamiento", "tipo", "type"},
	"date":        {"fecha", "date", "createdAt"},
	"vet":         {"veterinario", "vet"},
	"cost":        {"costo", "cost", "monto"},
	"description": {"descripcion", "description"},
}

var GPSFields = FieldTable{
	"id":        {"id", "idRastreo", "rastreoId"},
	"pet":       {"mascotaId", "idMascota", "petId", "mascota.id"},
	"latitude":  {"latitud", "latitude", "lat"},
	"longitude": {"longitud", "longitude", "lng", "lon"},
	"timestamp": {"timestamp", "fecha", "createdAt"},
}

var ListingFields = FieldTable{
	"id":          {"id", "idAdopcion", "adopcionId"},
	"pet":         {"mascotaId", "idMascota", "petId", "mascota.id"},
	"publisher":   {"usuarioPublicadorId", "publicadorId", "usuarioId", "idUsuario", "userId", "usuario.id"},
	"available":   {"disponible", "available"},
	"publishedAt": {"fechaPublicacion", "createdAt", "publishedAt"},
}

var RequestFields = FieldTable{
	"id":          {"id", "idSolicitud", "solicitudId"},
	"listing":     {"adopcionId", "idAdopcion", "listingId", "adopcion.id"},
	"requester":   {"solicitanteId", "idSolicitante", "usuarioId", "userId", "solicitante.id"},
	"status":      {"estado", "status"},
	"message":     {"mensaje", "message"},
	"requestedAt": {"fechaSolicitud", "createdAt"},
}

var ExpenseFields = FieldTable{
	"id":           {"id", "idGasto", "gastoId"},
	"owner":        userIDPaths,
	"pet":          {"mascotaId", "idMascota", "petId", "mascota_id", "mascota.id"},
	"category":     {"categoria", "tipo", "category"},
	"amount":       {"monto", "cantidad", "amount"},
	"date":         {"fecha", "fechaGasto", "createdAt"},
	"vendor":       {"proveedor", "descripcion", "vendor"},
	"reminderDate": {"fechaRecordatorio", "reminderDate"},
}

var BudgetFields = FieldTable{
	"id":     {"id", "idPresupuesto", "presupuestoId"},
	"owner":  userIDPaths,
	"month":  {"mes", "month"},
	"amount": {"monto", "cantidad", "presupuesto", "amount"},
}

var NeighborhoodFields = FieldTable{
	"id":    {"id", "idColonia", "coloniaId"},
	"name":  {"nombre", "name"},
	"code":  {"codigoInvitacion", "codigo", "invitationCode"},
	"owner": {"userId", "usuarioId", "idUsuario", "ownerId", "usuario.id"},
}

var MembershipFields = FieldTable{
	"id":           {"id", "idUsuarioColonia"},
	"user":         {"usuarioId", "idUsuario", "userId", "usuario.id"},
	"neighborhood": {"coloniaId", "idColonia", "colonia.id"},
	"joinedAt":     {"fechaRegistro", "createdAt", "fechaCreacion"},
}

var NeighborhoodPostFields = FieldTable{
	"id":           {"id", "idPostColonia", "postColoniaId"},
	"author":       {"usuarioId", "idUsuario", "userId", "usuario.id"},
	"neighborhood": {"coloniaId", "idColonia", "colonia.id"},
	"content":      {"contenido", "content"},
	"isAlert":      {"esAlerta", "alerta", "isAlert"},
	"createdAt":    {"fechaCreacion", "createdAt"},
}

var NeighborhoodPostImageFields = FieldTable{
	"id":     {"id"},
	"post":   {"postColoniaId", "postId"},
	"author": {"usuarioId", "userId"},
	"url":    {"imagePath", "ruta", "url"},
}

var NeighborhoodCommentFields = FieldTable{
	"id":        {"id"},
	"post":      {"postColoniaId", "postId"},
	"author":    {"userId", "usuarioId", "idUsuario"},
	"content":   {"contenido", "content", "texto"},
	"createdAt": {"fechaCreacion", "createdAt"},
}

var NeighborhoodLikeFields = FieldTable{
	"id":   {"id"},
	"post": {"postColoniaId", "postId"},
	"user": {"userId", "usuarioId", "idUsuario"},
}

var PostFields = FieldTable{
	"id":        {"id", "idPost", "postId"},
	"author":    {"usuarioId", "idUsuario", "userId", "usuario.id"},
	"content":   {"contenido", "content"},
	"image":     {"imagen", "image", "imagePath"},
	"createdAt": {"createdAt", "fechaCreacion"},
}

var PostImageFields = FieldTable{
	"id":     {"id"},
	"post":   {"postId", "idPost"},
	"author": {"usuarioId", "userId"},
	"url":    {"imagePath", "ruta", "url"},
}

var CommentFields = FieldTable{
	"id":        {"id"},
	"post":      {"postId", "idPost"},
	"author":    {"userId", "usuarioId", "idUsuario"},
	"content":   {"contenido", "content", "texto"},
	"createdAt": {"fechaCreacion", "createdAt"},
}

var LikeFields = FieldTable{
	"id":   {"id"},
	"post": {"postId", "idPost"},
	"user": {"userId", "usuarioId", "idUsuario"},
}
