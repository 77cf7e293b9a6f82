package settings

import "strings"

type diagnostic struct {
	needles    []string
	suggestion string
}

// diagnostics se evalúan en orden sobre el mensaje de error en minúsculas.
var diagnostics = []diagnostic{
	{[]string{"535", "534", "auth", "username and password", "credentials"},
		"Verifique usuario y contraseña. Con Gmail u Outlook use una contraseña de aplicación."},
	{[]string{"tls", "ssl", "first record does not look like a tls handshake", "starttls"},
		"Revise el modo de cifrado: el puerto 465 usa SSL implícito y el 587 usa STARTTLS."},
	{[]string{"timeout", "timed out", "i/o timeout", "deadline exceeded"},
		"El servidor no respondió a tiempo. Compruebe host, puerto y que el firewall permita la salida."},
	{[]string{"connection refused"},
		"El servidor rechazó la conexión. Confirme el puerto (25, 465 o 587) y que el servicio SMTP esté activo."},
	{[]string{"certificate", "x509"},
		"El certificado del servidor no es válido para el host configurado. Use el nombre exacto del certificado."},
	{[]string{"relay", "550", "553", "sender address rejected"},
		"El servidor no permite enviar con ese remitente. Use como remitente una cuenta autorizada en el servidor."},
	{[]string{"no such host", "lookup", "dns"},
		"No se pudo resolver el host. Revise que el nombre del servidor esté bien escrito."},
}

// SMTPSuggestions devuelve sugerencias según el texto del error de envío.
func SMTPSuggestions(err error) []string {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	var out []string
	for _, d := range diagnostics {
		for _, n := range d.needles {
			if strings.Contains(msg, n) {
				out = append(out, d.suggestion)
				break
			}
		}
	}
	if len(out) == 0 {
		out = append(out, "Revise la configuración SMTP y vuelva a intentar.")
	}
	return out
}
