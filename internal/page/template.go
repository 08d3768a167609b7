package page

import (
	"log"
	"os"
	"strings"
)

// Template wraps extracted page content in the website theme. Templates are
// plain HTML with {{TITLE}} and {{CONTENT}} placeholders.
type Template struct {
	text string
}

// LoadTemplate reads the template at path, falling back to the built-in
// generic template when path is empty or unreadable.
func LoadTemplate(path string) *Template {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return &Template{text: string(data)}
		}
		log.Printf("[WARN] template %s unreadable (%v), using built-in template", path, err)
	}
	return &Template{text: genericTemplate}
}

// Render substitutes the title and content into the template.
func (t *Template) Render(title, content string) string {
	out := strings.ReplaceAll(t.text, "{{TITLE}}", title)
	return strings.ReplaceAll(out, "{{CONTENT}}", content)
}

// genericTemplate is the project-page skeleton used when no site-specific
// template is configured. The image-grid classes match what the content
// pipeline emits.
const genericTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{TITLE}}</title>
  <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap" rel="stylesheet">
  <link rel="stylesheet" href="../../assets/css/style.css">
  <style>
    .image-grid {
      display: grid;
      gap: 2rem;
      margin: 2rem 0;
    }

    .image-grid.two-column {
      grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
    }

    .image-grid.three-column {
      grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
    }

    .image-grid.four-column {
      grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    }

    @media (max-width: 768px) {
      .image-grid.three-column,
      .image-grid.four-column {
        grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
      }
    }

    @media (max-width: 480px) {
      .image-grid {
        grid-template-columns: 1fr;
        gap: 1rem;
      }
    }

    .image-with-caption {
      text-align: center;
    }

    .image-with-caption img {
      width: 100%;
      height: auto;
      border-radius: var(--border-radius-small);
      box-shadow: var(--shadow-medium);
      transition: transform var(--transition-medium);
    }

    .image-with-caption img:hover {
      transform: scale(1.02);
      box-shadow: var(--shadow-heavy);
    }

    .image-with-caption div[style*="padding-bottom: 56.25%"]:hover {
      transform: scale(1.02);
      box-shadow: var(--shadow-heavy);
    }

    .caption {
      font-size: 0.9rem;
      color: var(--text-medium);
      font-style: italic;
      margin-top: 1rem;
      line-height: 1.4;
    }

    .project-content h2 {
      color: var(--secondary-color);
      font-size: 1.5rem;
      margin: 2rem 0 1rem 0;
      padding-bottom: 0.5rem;
      border-bottom: 2px solid var(--secondary-color);
    }

    .project-content ul {
      list-style: none;
      padding-left: 0;
      margin: 1rem 0;
    }

    .project-content li {
      position: relative;
      padding-left: 1.5rem;
      margin-bottom: 0.5rem;
    }

    .project-content li::before {
      content: '\25B8';
      color: var(--secondary-color);
      font-weight: bold;
      position: absolute;
      left: 0;
    }
  </style>
</head>
<body class="project-detail">
  <nav class="navbar">
    <div class="nav-container">
      <ul class="nav-links">
        <li><a href="../../index.html">About</a></li>
        <li><a href="../../resume.html">Resume</a></li>
        <li><a href="../../projects.html">Projects</a></li>
      </ul>
    </div>
  </nav>

  <main class="main-content">
    <section class="hero" style="padding: 4rem 0 2rem;">
      <div class="container">
        <h1>{{TITLE}}</h1>
      </div>
    </section>

    <section class="section">
      <div class="container">
        <div class="paper-panel">
          <div class="project-content">
            {{CONTENT}}
          </div>
        </div>

        <div class="text-center mt-3">
          <a href="../../projects.html" class="btn btn-secondary">Back to Projects</a>
        </div>
      </div>
    </section>
  </main>

  <script src="../../assets/js/main.js"></script>

  <script>
    document.addEventListener('DOMContentLoaded', function() {
      const navLinks = document.querySelectorAll('.nav-links a');
      navLinks.forEach(link => {
        if (link.getAttribute('href') === '../../projects.html') {
          link.classList.add('active');
        }
      });
    });
  </script>
</body>
</html>`
