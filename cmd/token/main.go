// token emite un JWT firmado con JWT_SECRET para un operador del mostrador.
//
// Uso: go run ./cmd/token -user cajero1 -role cajero [-minutes 720]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/facturacion-gst/pkg/config"
	"github.com/jhoicas/facturacion-gst/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "identificador del operador (obligatorio)")
	role := flag.String("role", jwt.RoleCashier, "rol: admin | cajero")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *user == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleCashier {
		fmt.Fprintf(os.Stderr, "rol inválido %q (admin | cajero)\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está configurado")
		os.Exit(1)
	}
	exp := *minutes
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
