// Package docs tiene el documento Swagger servido en /swagger/*, con el formato
// que emite swag. Se edita a mano; `go generate ./cmd/api` lo regenera desde las
// anotaciones de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/animals": {
            "post": {
                "tags": [
                    "animals"
                ],
                "summary": "Alta de animal",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "animal",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "tags": [
                    "animals"
                ],
                "summary": "Listar animales",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/animals/{animalID}": {
            "get": {
                "tags": [
                    "animals"
                ],
                "summary": "Obtener animal",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "tags": [
                    "animals"
                ],
                "summary": "Actualizar perfil",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "campos a modificar",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/animals/{animalID}/status": {
            "post": {
                "tags": [
                    "animals"
                ],
                "summary": "Cambiar estado",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "nuevo estado",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/adopters": {
            "post": {
                "tags": [
                    "adopters"
                ],
                "summary": "Alta de adoptante",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "adoptante",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "tags": [
                    "adopters"
                ],
                "summary": "Listar adoptantes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/adopters/{adopterID}": {
            "get": {
                "tags": [
                    "adopters"
                ],
                "summary": "Obtener adoptante",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "adopterID",
                        "name": "adopterID",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "tags": [
                    "adopters"
                ],
                "summary": "Actualizar adoptante",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "adopterID",
                        "name": "adopterID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "campos a modificar",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/animals/{animalID}/events": {
            "post": {
                "tags": [
                    "events"
                ],
                "summary": "Registrar evento de cuidado",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "evento",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "tags": [
                    "events"
                ],
                "summary": "Listar eventos de cuidado",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/animals/{animalID}/reservations": {
            "post": {
                "tags": [
                    "reservations"
                ],
                "summary": "Reservar animal",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "adopter_id",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "get": {
                "tags": [
                    "reservations"
                ],
                "summary": "Cola de reservas",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/animals/{animalID}/reservations/expired": {
            "get": {
                "tags": [
                    "reservations"
                ],
                "summary": "¿Cola vencida?",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "hours inválido"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Duración en horas enteras (por defecto la configurada)",
                        "name": "hours",
                        "in": "query"
                    }
                ]
            }
        },
        "/animals/{animalID}/reservations/finalize": {
            "post": {
                "tags": [
                    "reservations"
                ],
                "summary": "Evaluar cola vencida",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/animals/{animalID}/compatibility": {
            "get": {
                "tags": [
                    "reservations"
                ],
                "summary": "Preview de compatibilidad",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/reservations/expired-queues": {
            "get": {
                "tags": [
                    "reservations"
                ],
                "summary": "Colas vencidas pendientes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/reservations/{reservationID}": {
            "get": {
                "tags": [
                    "reservations"
                ],
                "summary": "Obtener reserva",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "reservationID",
                        "name": "reservationID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/reservations/{reservationID}/cancel": {
            "post": {
                "tags": [
                    "reservations"
                ],
                "summary": "Cancelar reserva",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "reservationID",
                        "name": "reservationID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/reservations/{reservationID}/confirm": {
            "post": {
                "tags": [
                    "reservations"
                ],
                "summary": "Confirmar adopción",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "reservationID",
                        "name": "reservationID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/adoptions": {
            "get": {
                "tags": [
                    "adoptions"
                ],
                "summary": "Listar adopciones",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/adoptions/{adoptionID}": {
            "get": {
                "tags": [
                    "adoptions"
                ],
                "summary": "Obtener adopción",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "adoptionID",
                        "name": "adoptionID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/animals/{animalID}/returns": {
            "post": {
                "tags": [
                    "adoptions"
                ],
                "summary": "Registrar devolución",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "reason",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/adoptions/{adoptionID}/contract": {
            "get": {
                "tags": [
                    "contracts"
                ],
                "summary": "Contrato de adopción",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "adoptionID",
                        "name": "adoptionID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/adoptions/{adoptionID}/contract/archive": {
            "post": {
                "tags": [
                    "contracts"
                ],
                "summary": "Archivar contrato",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "adoptionID",
                        "name": "adoptionID",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "get": {
                "tags": [
                    "contracts"
                ],
                "summary": "Contrato archivado",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "adoptionID",
                        "name": "adoptionID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/animals/{animalID}/timeline": {
            "get": {
                "tags": [
                    "timeline"
                ],
                "summary": "Historia del animal",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "animalID",
                        "name": "animalID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Shelter API",
	Description:      "Reservas, adopciones y devoluciones de un refugio de animales.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
