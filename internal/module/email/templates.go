package email

// Template names.
const (
	TemplateInviteUser          = "invite-user"
	TemplateInviteEmployee      = "invite-employee"
	TemplateInviteOrgContact    = "invite-organization-contact"
	TemplateInviteAcceptedAdmin = "invite-accepted-admin"
)

const inviteUserTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>You're invited to {{.OrganizationName}}</h1>
        <p>Hi,</p>
        <p>{{.InviterName}} has invited you to join {{.OrganizationName}} as {{.RoleName}}.</p>
        <p><a href="{{.AcceptURL}}" class="button">Accept Invitation</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p>{{.AcceptURL}}</p>
        {{if .ExpiresAt}}<p>This invitation expires on {{.ExpiresAt}}.</p>{{end}}
        <div class="footer">
            <p>If you weren't expecting this invitation, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>
`

const inviteEmployeeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Join the team at {{.OrganizationName}}</h1>
        <p>Hi,</p>
        <p>{{.InviterName}} has invited you to join {{.OrganizationName}} as an employee.</p>
        <p><a href="{{.AcceptURL}}" class="button">Accept Invitation</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p>{{.AcceptURL}}</p>
        {{if .ExpiresAt}}<p>This invitation expires on {{.ExpiresAt}}.</p>{{end}}
        <div class="footer">
            <p>If you weren't expecting this invitation, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>
`

const inviteOrgContactTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.OrganizationName}} wants to work with you</h1>
        <p>Hi,</p>
        <p>{{.InviterName}} has invited you to collaborate with {{.OrganizationName}} as an organization contact.</p>
        <p><a href="{{.AcceptURL}}" class="button">Accept Invitation</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p>{{.AcceptURL}}</p>
        {{if .ExpiresAt}}<p>This invitation expires on {{.ExpiresAt}}.</p>{{end}}
        <div class="footer">
            <p>If you weren't expecting this invitation, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>
`

const inviteAcceptedAdminTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Invitation accepted</h1>
        <p>Hi,</p>
        <p>{{.JoinedEmail}} has accepted their invitation and joined {{.OrganizationName}}.</p>
        <div class="footer">
            <p>You received this email because you administer {{.OrganizationName}}.</p>
        </div>
    </div>
</body>
</html>
`
