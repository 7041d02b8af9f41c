package viz

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matsen/docgraph/internal/lattice"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// threeVersion pins the three.js release loaded from the CDN.
const threeVersion = "0.160.0"

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	EdgeThreshold float64 // Hide edges lighter than this
	ShowEdges     bool
	ShowLattice   bool
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		EdgeThreshold: lattice.DefaultEdgeThreshold,
		ShowEdges:     true,
		ShowLattice:   false,
	}
}

// GenerateHTML generates a self-contained HTML page that draws the graph
// with three.js.
func GenerateHTML(g *lattice.Graph, opts HTMLOptions) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	if err := validateThreshold(opts.EdgeThreshold); err != nil {
		return "", err
	}

	if g.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	sceneJSON, err := ToJSON(g, opts)
	if err != nil {
		return "", err
	}

	data := templateData{
		SceneJSON:    template.JS(sceneJSON),
		ThreeVersion: threeVersion,
		Threshold:    fmt.Sprintf("%.2f", opts.EdgeThreshold),
		Seed:         g.Config.Seed,
		Scale:        g.Config.Scale,
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// validateThreshold checks that the edge threshold is a weight.
func validateThreshold(t float64) error {
	if !lattice.ValidThreshold(t) {
		return fmt.Errorf("invalid edge threshold %g: must be between 0 and 1", t)
	}
	return nil
}

// templateData holds data for the HTML template.
type templateData struct {
	SceneJSON    template.JS
	ThreeVersion string
	Threshold    string
	Seed         int64
	Scale        float64
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Document Lattice - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #07090c;
      color: #a3a3a3;
    }
    .empty-state {
      text-align: center;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #e5e5e5;
    }
    .empty-state code {
      background: #262626;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No documents</h2>
    <p>The graph was generated with zero documents.</p>
    <p>Try <code>dg viz --docs 900</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Document Lattice</title>
  <script type="importmap">
    {
      "imports": {
        "three": "https://unpkg.com/three@{{.ThreeVersion}}/build/three.module.js",
        "three/addons/": "https://unpkg.com/three@{{.ThreeVersion}}/examples/jsm/"
      }
    }
  </script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      overflow: hidden;
      background: #07090c;
      color: #e5e5e5;
    }
    #canvas {
      position: absolute;
      left: 0;
      top: 0;
      right: 340px;
      bottom: 0;
    }
    #sidebar {
      position: fixed;
      right: 0;
      top: 0;
      width: 340px;
      height: 100vh;
      padding: 16px;
      overflow-y: auto;
      background: rgba(10, 10, 10, 0.85);
      border-left: 1px solid #262626;
      font-size: 13px;
    }
    #sidebar h3 {
      font-size: 13px;
      margin: 16px 0 8px;
    }
    .grid {
      display: grid;
      grid-template-columns: 1fr 1fr;
      gap: 8px;
    }
    .card {
      background: rgba(23, 23, 23, 0.6);
      border: 1px solid #262626;
      border-radius: 8px;
      padding: 8px;
    }
    .card .name {
      color: #a3a3a3;
      font-size: 11px;
    }
    .card .value {
      font-size: 16px;
      font-weight: 600;
    }
    .muted {
      color: #737373;
      font-size: 11px;
    }
    ul {
      list-style: none;
      padding: 0;
      margin: 0;
    }
    li {
      display: flex;
      justify-content: space-between;
      padding: 2px 0;
    }
  </style>
</head>
<body>
  <div id="canvas"></div>
  <aside id="sidebar">
    <div style="font-size: 16px; font-weight: 600;">Document lattice</div>
    <div class="muted">3&times;3&times;3 neighborhood links &middot; scale {{.Scale}} &middot; seed {{.Seed}}</div>

    <h3>Statistics</h3>
    <div class="grid">
      <div class="card"><div class="name">Documents</div><div class="value" id="stat-docs"></div></div>
      <div class="card"><div class="name">Visible edges</div><div class="value" id="stat-edges"></div></div>
      <div class="card"><div class="name">Mean weight</div><div class="value" id="stat-weight"></div></div>
      <div class="card"><div class="name">Threshold</div><div class="value">{{.Threshold}}</div></div>
    </div>

    <h3>Size tiers</h3>
    <ul id="sizes"></ul>

    <h3>Selection</h3>
    <div id="selection" class="muted">Hover or click a point.</div>
  </aside>
  <script>
    window.sceneData = {{.SceneJSON}};
  </script>
  <script type="module">
    import * as THREE from 'three';
    import { OrbitControls } from 'three/addons/controls/OrbitControls.js';

    const scene = window.sceneData;
    const container = document.getElementById('canvas');

    // Sidebar statistics
    document.getElementById('stat-docs').textContent = scene.stats.documents.toLocaleString();
    document.getElementById('stat-edges').textContent = scene.stats.visible_edges.toLocaleString();
    document.getElementById('stat-weight').textContent = scene.stats.average_weight.toFixed(2);
    const sizes = document.getElementById('sizes');
    for (const [tier, count] of Object.entries(scene.stats.sizes)) {
      const li = document.createElement('li');
      li.innerHTML = '<span>' + tier + '</span><span class="muted">' + count + '</span>';
      sizes.appendChild(li);
    }

    // Renderer, camera, controls
    const renderer = new THREE.WebGLRenderer({ antialias: true });
    renderer.setPixelRatio(Math.min(window.devicePixelRatio, 2));
    container.appendChild(renderer.domElement);

    const world = new THREE.Scene();
    world.background = new THREE.Color('#07090c');
    world.fog = new THREE.Fog('#07090c', 10, 24);

    const camera = new THREE.PerspectiveCamera(60, 1, 0.01, 100);
    camera.position.set(0, 0, 7);
    const controls = new OrbitControls(camera, renderer.domElement);
    controls.enableDamping = true;
    controls.dampingFactor = 0.08;

    // Nodes as sized, colored points
    const count = scene.nodes.length;
    const positions = new Float32Array(count * 3);
    const colors = new Float32Array(count * 3);
    const color = new THREE.Color();
    scene.nodes.forEach((n, i) => {
      positions.set(n.pos, i * 3);
      color.set(n.color);
      colors.set([color.r, color.g, color.b], i * 3);
    });
    const nodeGeometry = new THREE.BufferGeometry();
    nodeGeometry.setAttribute('position', new THREE.BufferAttribute(positions, 3));
    nodeGeometry.setAttribute('color', new THREE.BufferAttribute(colors, 3));
    const nodeMaterial = new THREE.PointsMaterial({
      size: 0.04, vertexColors: true, transparent: true, opacity: 0.9, depthWrite: false
    });
    const points = new THREE.Points(nodeGeometry, nodeMaterial);
    world.add(points);

    // Visible edges as line segments
    if (scene.edges.length > 0) {
      const edgePositions = new Float32Array(scene.edges.length * 6);
      scene.edges.forEach((e, i) => {
        edgePositions.set(scene.nodes[e.a].pos, i * 6);
        edgePositions.set(scene.nodes[e.b].pos, i * 6 + 3);
      });
      const edgeGeometry = new THREE.BufferGeometry();
      edgeGeometry.setAttribute('position', new THREE.BufferAttribute(edgePositions, 3));
      world.add(new THREE.LineSegments(edgeGeometry,
        new THREE.LineBasicMaterial({ color: '#ffffff', transparent: true, opacity: 0.1, depthWrite: false })));
    }

    // Lattice wireframe
    if (scene.lattice.length > 0) {
      const latticeGeometry = new THREE.BufferGeometry();
      latticeGeometry.setAttribute('position', new THREE.BufferAttribute(new Float32Array(scene.lattice.flat()), 3));
      world.add(new THREE.LineSegments(latticeGeometry,
        new THREE.LineBasicMaterial({ color: '#8ba3b5', transparent: true, opacity: 0.18 })));
    }

    // Adjacency for the selection panel
    const adjacency = scene.nodes.map(() => []);
    scene.edges.forEach((e) => {
      adjacency[e.a].push({ other: e.b, w: e.w });
      adjacency[e.b].push({ other: e.a, w: e.w });
    });

    function escapeHtml(str) {
      if (!str) return '';
      return str.replace(/&/g, '&amp;')
                .replace(/</g, '&lt;')
                .replace(/>/g, '&gt;')
                .replace(/"/g, '&quot;');
    }

    const selection = document.getElementById('selection');
    function showNode(index) {
      if (index === null) {
        selection.className = 'muted';
        selection.textContent = 'Hover or click a point.';
        return;
      }
      const node = scene.nodes[index];
      const top = adjacency[index].slice().sort((a, b) => b.w - a.w).slice(0, 8);
      let html = '<div class="card"><div style="font-weight: 600;">' + escapeHtml(node.label) + '</div>';
      html += '<div class="muted">id ' + escapeHtml(node.id) + '</div>';
      if (top.length > 0) {
        html += '<ul style="margin-top: 8px;">';
        top.forEach((n) => {
          html += '<li><span>' + escapeHtml(scene.nodes[n.other].label) + '</span><span class="muted">' + n.w.toFixed(2) + '</span></li>';
        });
        html += '</ul>';
      } else {
        html += '<div class="muted" style="margin-top: 8px;">No visible connections.</div>';
      }
      html += '</div>';
      selection.className = '';
      selection.innerHTML = html;
    }

    // Picking
    const raycaster = new THREE.Raycaster();
    raycaster.params.Points.threshold = 0.03;
    const pointer = new THREE.Vector2();
    let selected = null;

    function pick(evt) {
      const rect = renderer.domElement.getBoundingClientRect();
      pointer.x = ((evt.clientX - rect.left) / rect.width) * 2 - 1;
      pointer.y = -((evt.clientY - rect.top) / rect.height) * 2 + 1;
      raycaster.setFromCamera(pointer, camera);
      const hits = raycaster.intersectObject(points);
      return hits.length > 0 ? hits[0].index : null;
    }

    renderer.domElement.addEventListener('pointermove', (evt) => {
      const hovered = pick(evt);
      showNode(hovered !== null ? hovered : selected);
    });
    renderer.domElement.addEventListener('click', (evt) => {
      selected = pick(evt);
      showNode(selected);
    });

    function resize() {
      const w = container.clientWidth;
      const h = container.clientHeight;
      renderer.setSize(w, h);
      camera.aspect = w / h;
      camera.updateProjectionMatrix();
    }
    window.addEventListener('resize', resize);
    resize();

    renderer.setAnimationLoop(() => {
      controls.update();
      renderer.render(world, camera);
    });
  </script>
</body>
</html>`
