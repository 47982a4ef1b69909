package utils

import (
	"fmt"
	"time"
)

func SendWelcomeEmail(to, name string) error {
	subject := fmt.Sprintf("Bem-vindo ao Meu Bolso, %s!", name)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="pt-BR">
	<head>
		<meta charset="UTF-8" />
		<title>Bem-vindo ao Meu Bolso</title>
		<style>
			body {
				font-family: Arial, Helvetica, sans-serif;
				background-color: #f6f8f7;
				margin: 0;
				padding: 0;
			}
			.container {
				max-width: 600px;
				margin: 40px auto;
				background: #ffffff;
				border-radius: 12px;
				overflow: hidden;
				border-top: 5px solid #0f766e;
			}
			.header {
				background-color: #0f766e;
				color: #ffffff;
				text-align: center;
				padding: 30px 20px;
			}
			.content {
				padding: 30px 35px;
				color: #333333;
				font-size: 15px;
				line-height: 1.8;
			}
			.footer {
				background: #f0f6f4;
				text-align: center;
				padding: 20px;
				font-size: 12px;
				color: #666666;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Meu Bolso</h1>
			</div>
			<div class="content">
				<p>Olá %s,</p>
				<p>
					Sua conta foi criada com sucesso. Já criamos sua primeira
					carteira para você começar a registrar receitas e despesas
					e acompanhar seu resumo mensal no dashboard.
				</p>
				<p>Boas finanças!</p>
			</div>
			<div class="footer">
				&copy; %d Meu Bolso
			</div>
		</div>
	</body>
	</html>
	`, name, time.Now().Year())

	return SendEmail(to, subject, body)
}
