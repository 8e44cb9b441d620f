// Package swagger embeds the OpenAPI document of the users API.
package swagger

import _ "embed"

// DocPath is where the users API serves its OpenAPI document.
const DocPath = "/api-docs/users.swagger.json"

//go:embed users.swagger.json
var UsersDoc []byte
